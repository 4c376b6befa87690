package application_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/abdidvp/keyalign/internal/adapters/outbound/cache"
	"github.com/abdidvp/keyalign/internal/adapters/outbound/config"
	"github.com/abdidvp/keyalign/internal/adapters/outbound/gitinfo"
	"github.com/abdidvp/keyalign/internal/adapters/outbound/history"
	"github.com/abdidvp/keyalign/internal/adapters/outbound/parser"
	"github.com/abdidvp/keyalign/internal/adapters/outbound/scanner"
	"github.com/abdidvp/keyalign/internal/application"
)

const (
	misaligned = "interface Shape {\n  a: string;\n  bb  : number;\n}\n"
	fixed      = "interface Shape {\n  a: string;\n  bb: number;\n}\n"
	clean      = "enum Color {\n  Red = 1,\n  Green = 2,\n}\n"
)

var fixedTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testOptions() []application.Option {
	return []application.Option{
		application.WithClock(func() time.Time { return fixedTime }),
		application.WithRunIDs(func() string { return "run-1" }),
	}
}

func newCheckService() *application.CheckService {
	p := parser.New()
	return application.NewCheckService(
		scanner.New(p.Supports),
		p,
		config.New(),
		cache.New(),
		history.New(),
		gitinfo.New(),
		testOptions()...,
	)
}

func newFixService() *application.FixService {
	p := parser.New()
	return application.NewFixService(scanner.New(p.Supports), p, config.New(), testOptions()...)
}

// writeProject creates files (slash paths to content) under a temp dir.
func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

func readFile(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
	require.NoError(t, err)
	return string(data)
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, string(out))
}
