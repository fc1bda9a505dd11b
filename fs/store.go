package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/wizperch/perch"
)

var _ perch.PageStore = (*FileStore)(nil)

// FileStore implements perch.PageStore with atomic update semantics.
// Pages are written under baseDir/name.tmp and moved to baseDir/name on Commit.
type FileStore struct {
	baseDir string
	name    string
}

// NewFileStore creates a new FileStore.
func NewFileStore(baseDir, name string) *FileStore {
	return &FileStore{baseDir: baseDir, name: name}
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes page to the temporary directory.
func (s *FileStore) Save(ctx context.Context, page *perch.Page) error {
	if err := page.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	relPath, err := URLToPath(page.URL)
	if err != nil {
		return err
	}
	fullPath := filepath.Join(s.tempDir(), filepath.FromSlash(relPath))

	content, err := FormatPage(page)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(content), 0o644)
}

// Commit replaces the final directory with the temporary one. Committing
// without any saved page leaves an empty final directory.
func (s *FileStore) Commit() error {
	if err := os.MkdirAll(s.tempDir(), 0o755); err != nil {
		return err
	}
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards everything saved since the store was created.
func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
