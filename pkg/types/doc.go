// Package types defines the core types and interfaces shared by the
// pkgprune packages: the FS capability, installed packages, and the
// classification of filesystem entries and removal targets.
package types
