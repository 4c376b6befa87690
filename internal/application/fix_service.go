package application

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/abdidvp/keyalign/internal/atomicfile"
	"github.com/abdidvp/keyalign/internal/domain"
	"github.com/abdidvp/keyalign/internal/domain/spacing"
)

// FixRequest describes one project fix.
type FixRequest struct {
	ProjectPath string
	Paths       []string
	Options     domain.FixOptions
	Concurrency int
}

// FixService applies spacing edits until files reach a fixed point.
type FixService struct {
	base
}

func NewFixService(
	scanner domain.ProjectScanner,
	parser domain.DeclarationParser,
	configLoader domain.ConfigLoader,
	opts ...Option,
) *FixService {
	return &FixService{base: newBase(scanner, parser, configLoader, opts)}
}

// FixProject fixes every selected file of a project. Changed files are
// replaced atomically unless the run is a dry run.
func (s *FixService) FixProject(ctx context.Context, req FixRequest) (*domain.FixResult, error) {
	t, err := s.resolve(req.ProjectPath, req.Paths)
	if err != nil {
		return nil, err
	}

	driver := spacing.NewDriver(t.config.Policy())
	result := &domain.FixResult{
		RunID:  s.newID(),
		DryRun: req.Options.DryRun,
		Files:  make([]domain.FileFix, len(t.files)),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency(req.Concurrency, t.config.Concurrency))
	for i, rel := range t.files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result.Files[i] = s.fixFile(driver, t.root, rel, req.Options)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Info("fix finished",
		"run_id", result.RunID,
		"files", len(result.Files),
		"applied", result.AppliedCount(),
		"dry_run", result.DryRun,
	)
	return result, nil
}

func (s *FixService) fixFile(driver *spacing.Driver, root, rel string, opts domain.FixOptions) domain.FileFix {
	out := domain.FileFix{Path: rel}
	abs := filepath.Join(root, filepath.FromSlash(rel))

	content, err := os.ReadFile(abs)
	if err != nil {
		out.Error = err.Error()
		return out
	}

	fix, err := domain.FixText(string(content), opts.Passes(), s.editsFor(driver, rel))
	if err != nil {
		s.logger.Warn("skipping unfixable file", "path", rel, "error", err)
		out.Error = err.Error()
		return out
	}
	out.Applied, out.Passes, out.Remaining = fix.Applied, fix.Passes, fix.Remaining
	if !fix.Changed() || opts.DryRun {
		return out
	}

	if err := atomicfile.WriteFile(abs, []byte(fix.Text), fileMode(abs)); err != nil {
		out.Error = fmt.Sprintf("writing %s: %v", rel, err)
		return out
	}
	s.logger.Debug("fixed file", "path", rel, "edits", fix.Applied, "passes", fix.Passes)
	return out
}

// FixSource fixes a single buffer against raw options and returns the
// resulting text.
func (s *FixService) FixSource(path, text string, raw domain.RawOptions, opts domain.FixOptions) (domain.TextFix, error) {
	if !s.parser.Supports(path) {
		return domain.TextFix{}, fmt.Errorf("%s: unsupported file type", path)
	}
	driver := spacing.NewDriver(domain.Normalize(raw))
	fix, err := domain.FixText(text, opts.Passes(), s.editsFor(driver, path))
	if err != nil {
		return domain.TextFix{}, fmt.Errorf("fixing %s: %w", path, err)
	}
	return fix, nil
}
