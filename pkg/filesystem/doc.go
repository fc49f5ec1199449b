// Package filesystem provides filesystem implementations for pkgprune.
//
// This package contains implementations of the types.FS interface:
// the OS filesystem used by the CLI and an afero-backed filesystem used
// by tests.
package filesystem
