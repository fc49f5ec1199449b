// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"io"

	"github.com/arthur-debert/pkgprune/pkg/ui/styles"
	"github.com/arthur-debert/pkgprune/pkg/ui/text"
)

// Renderer lays output out like the text renderer and styles it with the
// registry from pkg/ui/styles.
type Renderer struct {
	*text.Renderer
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	inner, err := text.NewStyled(w, styles.Render)
	if err != nil {
		return nil, err
	}
	return &Renderer{Renderer: inner}, nil
}
