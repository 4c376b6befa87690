package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abdidvp/keyalign/internal/adapters/outbound/cache"
	"github.com/abdidvp/keyalign/internal/adapters/outbound/config"
	"github.com/abdidvp/keyalign/internal/adapters/outbound/gitinfo"
	"github.com/abdidvp/keyalign/internal/adapters/outbound/history"
	"github.com/abdidvp/keyalign/internal/adapters/outbound/parser"
	"github.com/abdidvp/keyalign/internal/adapters/outbound/scanner"
	"github.com/abdidvp/keyalign/internal/application"
)

func (o *rootOptions) configLoader() *config.YAMLLoader {
	return config.WithFile(o.configPath)
}

func (o *rootOptions) checkService() *application.CheckService {
	par := parser.New()
	return application.NewCheckService(
		scanner.New(par.Supports),
		par,
		o.configLoader(),
		cache.New(),
		history.New(),
		gitinfo.New(),
		application.WithLogger(o.logger),
	)
}

func (o *rootOptions) fixService() *application.FixService {
	par := parser.New()
	return application.NewFixService(
		scanner.New(par.Supports),
		par,
		o.configLoader(),
		application.WithLogger(o.logger),
	)
}

// projectPaths resolves the project root and turns path arguments, given
// relative to the working directory, into paths relative to the root.
func projectPaths(root string, args []string) (string, []string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", nil, fmt.Errorf("resolving path: %w", err)
	}
	if info, err := os.Stat(absRoot); err != nil || !info.IsDir() {
		return "", nil, fmt.Errorf("project root %s is not a directory", root)
	}

	var paths []string
	for _, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return "", nil, fmt.Errorf("resolving path: %w", err)
		}
		rel, err := filepath.Rel(absRoot, abs)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return "", nil, fmt.Errorf("%s is outside the project root %s", arg, absRoot)
		}
		if rel == "." {
			continue
		}
		paths = append(paths, filepath.ToSlash(rel))
	}
	return absRoot, paths, nil
}

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
