package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdidvp/keyalign/internal/atomicfile"
	"github.com/abdidvp/keyalign/internal/domain"
)

// Store is a file-based implementation of domain.ResultCache.
type Store struct{}

var _ domain.ResultCache = (*Store)(nil)

// New creates a new file-based cache store.
func New() *Store {
	return &Store{}
}

// Load reads a project cache from disk. Returns (nil, nil) if no cache exists.
func (s *Store) Load(projectPath string) (*domain.LintCache, error) {
	data, err := os.ReadFile(cachePath(projectPath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // no cache is not an error
		}
		return nil, err
	}

	var cache domain.LintCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, fmt.Errorf("decoding cache: %w", err)
	}
	return &cache, nil
}

// Save writes a project cache to disk, creating directories as needed.
func (s *Store) Save(cache *domain.LintCache) error {
	return atomicfile.WriteJSON(cachePath(cache.ProjectPath), cache)
}

// Invalidate removes the cache file for the given project path.
func (s *Store) Invalidate(projectPath string) error {
	if err := os.Remove(cachePath(projectPath)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func cachePath(projectPath string) string {
	return filepath.Join(projectPath, ".keyalign", "cache", "results.json")
}
