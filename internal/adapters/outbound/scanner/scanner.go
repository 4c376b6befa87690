package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/abdidvp/keyalign/internal/domain"
)

var skipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"dist":         true,
	"build":        true,
	"coverage":     true,
	"vendor":       true,
	".keyalign":    true,
}

// FileScanner implements domain.ProjectScanner by walking the filesystem.
type FileScanner struct {
	accept func(path string) bool
}

var _ domain.ProjectScanner = (*FileScanner)(nil)

// New returns a scanner that keeps the files accept reports true for.
func New(accept func(path string) bool) *FileScanner {
	return &FileScanner{accept: accept}
}

// Scan lists accepted files below projectPath as slash-separated paths
// relative to it. include narrows the walk to the given files or
// directories; exclude drops entries matching a directory name, a relative
// path prefix or a glob pattern.
func (s *FileScanner) Scan(projectPath string, include, exclude []string) (*domain.ScanResult, error) {
	absPath, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, err
	}

	roots := []string{absPath}
	if len(include) > 0 {
		roots = roots[:0]
		for _, inc := range include {
			roots = append(roots, filepath.Join(absPath, filepath.FromSlash(inc)))
		}
	}

	seen := map[string]bool{}
	result := &domain.ScanResult{RootPath: absPath}
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, _ := filepath.Rel(absPath, path)
			rel = filepath.ToSlash(rel)

			if d.IsDir() {
				if path != root && (skipDirs[d.Name()] || excluded(rel, d.Name(), exclude)) {
					return filepath.SkipDir
				}
				return nil
			}
			if excluded(rel, d.Name(), exclude) || (s.accept != nil && !s.accept(path)) {
				return nil
			}
			if !seen[rel] {
				seen[rel] = true
				result.Files = append(result.Files, rel)
			}
			return nil
		})
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("include path %s: %w", root, err)
			}
			return nil, err
		}
	}

	sort.Strings(result.Files)
	return result, nil
}

func excluded(rel, name string, patterns []string) bool {
	for _, p := range patterns {
		p = strings.TrimSuffix(filepath.ToSlash(p), "/")
		if p == name || p == rel || strings.HasPrefix(rel, p+"/") {
			return true
		}
		if ok, _ := filepath.Match(p, rel); ok {
			return true
		}
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}
