// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"

	"github.com/arthur-debert/pkgprune/pkg/cleanup"
	"github.com/arthur-debert/pkgprune/pkg/executor"
)

// Styler decorates a span of output with the named style.
type Styler func(style, s string) string

func plain(_, s string) string { return s }

var statusOrder = []cleanup.Status{
	cleanup.StatusCleaned,
	cleanup.StatusExcluded,
	cleanup.StatusMetapackage,
	cleanup.StatusUnresolved,
	cleanup.StatusConfigError,
}

var statusStyles = map[cleanup.Status]string{
	cleanup.StatusCleaned:     "Success",
	cleanup.StatusExcluded:    "Muted",
	cleanup.StatusMetapackage: "Muted",
	cleanup.StatusUnresolved:  "Warning",
	cleanup.StatusConfigError: "Error",
}

var outcomeStyles = map[executor.Outcome]string{
	executor.OutcomeRemoved:  "Success",
	executor.OutcomeVanished: "Muted",
	executor.OutcomeFailed:   "Error",
	executor.OutcomeRefused:  "Error",
}

// Renderer provides plain text output, optionally decorated by a Styler.
type Renderer struct {
	output io.Writer
	style  Styler
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return NewStyled(output, nil)
}

// NewStyled creates a text renderer that passes labels through style.
func NewStyled(output io.Writer, style Styler) (*Renderer, error) {
	if style == nil {
		style = plain
	}
	return &Renderer{output: output, style: style}, nil
}

// RenderResult renders a cleanup summary or a single directory report.
func (r *Renderer) RenderResult(result interface{}) error {
	var b strings.Builder
	switch v := result.(type) {
	case *cleanup.Summary:
		r.writeSummary(&b, v)
	case *executor.Report:
		r.writeReport(&b, v)
	default:
		fmt.Fprintf(&b, "%+v\n", result)
	}
	_, err := io.WriteString(r.output, b.String())
	return err
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintf(r.output, "%s %v\n", r.style("Error", "Error:"), err)
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

func (r *Renderer) writeSummary(b *strings.Builder, s *cleanup.Summary) {
	if s.Source != "" {
		fmt.Fprintf(b, "%s %s\n", r.style("Muted", "Configuration:"), r.style("FilePath", s.Source))
	}
	if len(s.Packages) == 0 {
		fmt.Fprintln(b, r.style("Muted", "No packages cleaned."))
		return
	}

	nameWidth := lo.Max(lo.Map(s.Packages, func(p cleanup.PackageResult, _ int) int {
		return len(p.Package.Name)
	}))
	statusWidth := lo.Max(lo.Map(statusOrder, func(st cleanup.Status, _ int) int {
		return len(st)
	}))

	for _, p := range s.Packages {
		name := fmt.Sprintf("%-*s", nameWidth, p.Package.Name)
		status := fmt.Sprintf("%-*s", statusWidth, p.Status)
		line := r.style("Package", name) + "  " + r.style(statusStyles[p.Status], status)
		switch {
		case p.Status == cleanup.StatusCleaned:
			line += "  " + fmt.Sprintf("%d removed", p.Removed())
		case p.Error != "":
			line += "  " + r.style("MutedItalic", p.Error)
		}
		fmt.Fprintln(b, strings.TrimRight(line, " "))

		if p.Report != nil {
			r.writeResults(b, p.Report.Failures())
		}
	}

	counts := s.StatusCounts()
	parts := lo.FilterMap(statusOrder, func(st cleanup.Status, _ int) (string, bool) {
		return fmt.Sprintf("%d %s", counts[st], st), counts[st] > 0
	})
	footer := fmt.Sprintf("%d packages: %s; %d paths removed, %d failed",
		len(s.Packages), strings.Join(parts, ", "), s.Removed(), len(s.Failures()))
	fmt.Fprintln(b, r.style("Summary", footer))
}

func (r *Renderer) writeReport(b *strings.Builder, rep *executor.Report) {
	fmt.Fprintln(b, r.style("Header", rep.BasePath))
	if len(rep.Results) == 0 {
		fmt.Fprintln(b, r.style("Muted", "Nothing to remove."))
		return
	}
	r.writeResults(b, rep.Results)
	footer := fmt.Sprintf("%d removed, %d vanished, %d failed",
		rep.Removed(), rep.Count(executor.OutcomeVanished), len(rep.Failures()))
	fmt.Fprintln(b, r.style("Summary", footer))
}

func (r *Renderer) writeResults(b *strings.Builder, results []executor.Result) {
	width := lo.Max(lo.Map(results, func(res executor.Result, _ int) int {
		return len(res.Outcome)
	}))
	for _, res := range results {
		outcome := fmt.Sprintf("%-*s", width, res.Outcome)
		path := res.RelPath
		if path == "" {
			path = res.Path
		}
		line := "    " + r.style(outcomeStyles[res.Outcome], outcome) + "  " + r.style("FilePath", path)
		if res.Source != "" {
			line += "  " + r.style("Muted", "("+res.Source+")")
		}
		if res.Error != "" {
			line += "  " + r.style("MutedItalic", res.Error)
		}
		fmt.Fprintln(b, line)
	}
}
