package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sushnag22/pdf-generator/internal/application/document"
	"github.com/sushnag22/pdf-generator/internal/domain"
	"github.com/sushnag22/pdf-generator/pkg/logger"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
	// Temporary files are hidden so CheckName never lets them be served.
	tmpPattern = ".tmp-*"
)

// FileSystemStore keeps documents as files in one flat directory.
//
// Store writes to a temporary file in the same directory and renames it into place,
// so readers see either no file or the complete file. The existence check before the
// write is not locked: two requests for the same name may both write, which is safe
// because equal names carry equal content.
type FileSystemStore struct {
	root string
	log  *logger.Logger
}

// NewFileSystemStore builds a store rooted at dir. The directory is not touched
// until EnsureDirectory or the first Store.
func NewFileSystemStore(dir string, log *logger.Logger) *FileSystemStore {
	return &FileSystemStore{root: filepath.Clean(dir), log: log.Named("storage.fs")}
}

// Root returns the storage directory.
func (s *FileSystemStore) Root() string { return s.root }

// EnsureDirectory creates the storage root if missing. Errors are logged and
// swallowed; Store retries the creation on the next write.
func (s *FileSystemStore) EnsureDirectory(_ context.Context) {
	if fi, err := os.Stat(s.root); err == nil && fi.IsDir() {
		return
	}
	if err := os.MkdirAll(s.root, dirPerm); err != nil {
		s.log.Error().Err(err).Str("dir", s.root).Msg("failed to create PDF directory")
		return
	}
	s.log.Info().Str("dir", s.root).Msg("PDF directory created successfully")
}

// Exists reports whether a document with that name is stored.
func (s *FileSystemStore) Exists(_ context.Context, name string) (bool, error) {
	path, err := s.resolve(name)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("%w: stat %s: %w", domain.ErrStorage, name, err)
	}
}

// Store writes data under name unless a file with that name already exists.
func (s *FileSystemStore) Store(ctx context.Context, name string, data []byte) (document.StoreResult, error) {
	path, err := s.resolve(name)
	if err != nil {
		return document.StoreResult{}, err
	}
	res := document.StoreResult{Name: name, Location: path, Size: int64(len(data))}

	exists, err := s.Exists(ctx, name)
	if err != nil {
		return document.StoreResult{}, err
	}
	if exists {
		return res, nil
	}

	if err := os.MkdirAll(s.root, dirPerm); err != nil {
		return document.StoreResult{}, fmt.Errorf("%w: create directory: %w", domain.ErrStorage, err)
	}
	if err := writeAtomic(s.root, path, data); err != nil {
		return document.StoreResult{}, fmt.Errorf("%w: write %s: %w", domain.ErrStorage, name, err)
	}
	res.Created = true
	return res, nil
}

// Retrieve reads the document stored under name.
func (s *FileSystemStore) Retrieve(_ context.Context, name string) ([]byte, error) {
	path, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, name)
		}
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrStorage, name, err)
	}
	return data, nil
}

// resolve validates name and returns its absolute path, verifying it stays under root.
func (s *FileSystemStore) resolve(name string) (string, error) {
	if err := CheckName(name); err != nil {
		s.log.Warn().Str("name", name).Msg("blocked invalid file name")
		return "", err
	}
	absRoot, err := filepath.Abs(s.root)
	if err != nil {
		return "", fmt.Errorf("%w: resolve root: %w", domain.ErrStorage, err)
	}
	absPath := filepath.Join(absRoot, name)
	if filepath.Dir(absPath) != absRoot || !strings.HasPrefix(absPath, absRoot+string(filepath.Separator)) {
		s.log.Warn().Str("name", name).Str("path", absPath).Msg("path escape attempt blocked")
		return "", fmt.Errorf("%w: %q escapes the storage root", domain.ErrInvalidFileName, name)
	}
	return absPath, nil
}

// writeAtomic writes data to a temp file in dir, syncs it and renames it to path.
func writeAtomic(dir, path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmpName, filePerm); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

var _ document.Store = (*FileSystemStore)(nil)
