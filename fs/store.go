package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/legiblehq/legible"
)

// Ensure FileStore implements legible.ArticleStore at compile time.
var _ legible.ArticleStore = (*FileStore)(nil)

// FileStore implements legible.ArticleStore with atomic update semantics.
// Articles are saved to a temporary directory, then moved atomically on
// Commit.
type FileStore struct {
	baseDir string
	name    string
}

// NewFileStore creates a new FileStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFileStore(baseDir, name string) *FileStore {
	return &FileStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes an article to the temporary directory.
func (s *FileStore) Save(ctx context.Context, article *legible.Article) error {
	relPath, err := URLToPath(article.SourceURL)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(s.tempDir(), relPath)

	// Create parent directories
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	content, err := FormatArticle(article)
	if err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(content), 0644)
}

// Commit replaces the final directory with the temporary one.
func (s *FileStore) Commit() error {
	// Remove existing final directory if present
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}

	// Atomically rename temp to final
	if err := os.Rename(s.tempDir(), s.finalDir()); err != nil {
		return err
	}

	return nil
}

// Abort discards the temporary directory.
func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
