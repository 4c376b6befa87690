package application

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/abdidvp/keyalign/internal/domain"
	"github.com/abdidvp/keyalign/internal/domain/spacing"
)

// Option configures a service.
type Option func(*base)

// WithLogger sets the operational logger. Services log nothing by default.
func WithLogger(l *slog.Logger) Option {
	return func(b *base) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(b *base) { b.now = now }
}

// WithRunIDs replaces the run ID generator, for tests.
func WithRunIDs(next func() string) Option {
	return func(b *base) { b.newID = next }
}

// base carries the collaborators shared by the check and fix services.
type base struct {
	scanner      domain.ProjectScanner
	parser       domain.DeclarationParser
	configLoader domain.ConfigLoader
	logger       *slog.Logger
	now          func() time.Time
	newID        func() string
}

func newBase(scanner domain.ProjectScanner, parser domain.DeclarationParser, configLoader domain.ConfigLoader, opts []Option) base {
	b := base{
		scanner:      scanner,
		parser:       parser,
		configLoader: configLoader,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:          time.Now,
		newID:        uuid.NewString,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// target is the resolved input of a project run.
type target struct {
	root   string
	config domain.ProjectConfig
	files  []string
}

// resolve loads the config and lists the files a run covers. paths, when
// given, replace the configured include list.
func (b *base) resolve(projectPath string, paths []string) (*target, error) {
	cfg, err := b.configLoader.Load(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	include := cfg.Include
	if len(paths) > 0 {
		include = paths
	}
	scan, err := b.scanner.Scan(projectPath, include, cfg.Exclude)
	if err != nil {
		return nil, fmt.Errorf("scanning project: %w", err)
	}
	return &target{root: scan.RootPath, config: cfg, files: scan.Files}, nil
}

// lint parses content and checks every declaration body in it.
func (b *base) lint(driver *spacing.Driver, path string, content []byte) (domain.FileReport, error) {
	parsed, err := b.parser.ParseFile(path, content)
	if err != nil {
		return domain.FileReport{}, err
	}
	return driver.CheckFile(parsed), nil
}

// editsFor returns the check function FixText drives for one file.
func (b *base) editsFor(driver *spacing.Driver, path string) func(string) ([]domain.Edit, error) {
	return func(text string) ([]domain.Edit, error) {
		report, err := b.lint(driver, path, []byte(text))
		if err != nil {
			return nil, err
		}
		return report.Edits(), nil
	}
}

func concurrency(requested, configured int) int {
	switch {
	case requested > 0:
		return requested
	case configured > 0:
		return configured
	default:
		return runtime.NumCPU()
	}
}

func contentHash(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h)
}

// policyHash identifies a policy for cache invalidation.
func policyHash(p domain.Policy) string {
	data, err := json.Marshal(p)
	if err != nil {
		return ""
	}
	return contentHash(data)
}

// fileMode returns the permission bits of path, 0644 if it cannot be read.
func fileMode(path string) os.FileMode {
	info, err := os.Stat(path)
	if err != nil {
		return 0o644
	}
	return info.Mode().Perm()
}
