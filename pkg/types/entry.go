package types

// EntryType is the kind of a filesystem object found under a base path.
type EntryType int

const (
	EntryFile EntryType = iota
	EntryDirectory
)

func (t EntryType) String() string {
	if t == EntryDirectory {
		return "directory"
	}
	return "file"
}

// RemovalKind selects the removal primitive for a target.
type RemovalKind int

const (
	// RemoveAny removes whatever exists at the path.
	RemoveAny RemovalKind = iota
	// RemoveFile unlinks a single file.
	RemoveFile
	// RemoveDirectory removes a directory tree.
	RemoveDirectory
)

func (k RemovalKind) String() string {
	switch k {
	case RemoveFile:
		return "file"
	case RemoveDirectory:
		return "directory"
	default:
		return "path"
	}
}

// MarshalText renders the kind by name in reports.
func (k RemovalKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
