package filestorage

import "io"

// FileInfo describes a stored file
type FileInfo struct {
	Path     string // Full filesystem path
	Filename string // Name relative to the storage root
	FileSize int64  // Size in bytes
}

// WriteFunc streams file content into w
type WriteFunc func(w io.Writer) error

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// Save writes a file under name, replacing any previous content
	Save(name string, write WriteFunc) (*FileInfo, error)

	// Delete removes a file from storage
	Delete(name string) error

	// GetFullPath returns the full filesystem path for name
	GetFullPath(name string) string
}
