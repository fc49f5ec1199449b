package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/pkgprune/cmd/pkgprune"
	"github.com/arthur-debert/pkgprune/pkg/ui/styles"
)

func main() {
	rootCmd := pkgprune.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		errorStyle := styles.GetStyle("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
