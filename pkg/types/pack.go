package types

// MetaPackageType marks packages that have no files of their own.
const MetaPackageType = "metapackage"

// Package is one installed package as reported by the package manager.
type Package struct {
	// Name is the vendor-qualified name, e.g. "acme/widgets".
	Name string `json:"name"`

	// Type is the package type ("library", "metapackage", ...).
	Type string `json:"type"`

	// InstallPath is where the package manager put the package's files.
	// It may be relative to the manager's metadata directory until resolved.
	InstallPath string `json:"installPath,omitempty"`
}

// IsMeta reports whether the package has no physical install path.
func (p Package) IsMeta() bool {
	return p.Type == MetaPackageType
}
