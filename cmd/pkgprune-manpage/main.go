package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/pkgprune/cmd/pkgprune"
	"github.com/arthur-debert/pkgprune/internal/version"
)

func main() {
	rootCmd := pkgprune.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "PKGPRUNE",
		Section: "1",
		Source:  "pkgprune " + version.Version,
		Manual:  "pkgprune manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
