package filestorage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// LocalStorage saves files under a directory on the local filesystem.
// Content is written to a temporary file and renamed into place, so a failed
// write never leaves a truncated file behind.
type LocalStorage struct {
	basePath string
	logger   zerolog.Logger
}

var _ FileStorage = (*LocalStorage)(nil)

// NewLocalStorage creates a new LocalStorage instance, creating basePath if needed.
func NewLocalStorage(basePath string, lgr zerolog.Logger) (*LocalStorage, error) {
	if basePath == "" {
		basePath = "."
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		lgr.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	lgr.Debug().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		logger:   lgr,
	}, nil
}

// Save writes name below the storage root
func (ls *LocalStorage) Save(name string, write WriteFunc) (*FileInfo, error) {
	dstPath := ls.GetFullPath(name)
	if dstPath == "" {
		return nil, fmt.Errorf("invalid file name %q", name)
	}

	dir := filepath.Dir(dstPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		ls.logger.Error().Err(err).Str("path", dir).Msg("Failed to create subdirectory")
		return nil, fmt.Errorf("failed to create subdirectory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(dstPath)+"-*")
	if err != nil {
		ls.logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := write(tmp); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		ls.logger.Error().Err(err).Str("path", dstPath).Msg("Failed to write file content")
		return nil, fmt.Errorf("failed to save file content: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return nil, fmt.Errorf("failed to save file content: %w", err)
	}
	if err := os.Rename(tmpPath, dstPath); err != nil {
		_ = os.Remove(tmpPath)
		ls.logger.Error().Err(err).Str("path", dstPath).Msg("Failed to move file into place")
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	stat, err := os.Stat(dstPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat saved file: %w", err)
	}

	ls.logger.Info().Str("path", dstPath).Int64("size", stat.Size()).Msg("File saved successfully")
	return &FileInfo{
		Path:     dstPath,
		Filename: name,
		FileSize: stat.Size(),
	}, nil
}

// Delete removes a file from the storage root.
// Returns nil if deletion is successful or if the file doesn't exist.
func (ls *LocalStorage) Delete(name string) error {
	physicalPath := ls.GetFullPath(name)
	if physicalPath == "" {
		return fmt.Errorf("invalid file name %q", name)
	}

	if err := os.Remove(physicalPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			ls.logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
			return nil
		}
		ls.logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	ls.logger.Info().Str("path", physicalPath).Msg("File deleted successfully")
	return nil
}

// GetFullPath returns the full filesystem path for name, or "" when name
// would escape the storage root.
func (ls *LocalStorage) GetFullPath(name string) string {
	if name == "" || !filepath.IsLocal(name) {
		return ""
	}
	return filepath.Join(ls.basePath, name)
}
