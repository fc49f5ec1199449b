// Package paths holds the path rules that keep pkgprune inside a package.
//
// A base path is the canonical install directory of one package. Every
// deletion target must be strictly below it: the base itself and any
// sibling that merely shares a string prefix ("/v/acme" vs "/v/acme-extra")
// are outside.
package paths
