package application

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/abdidvp/keyalign/internal/domain"
	"github.com/abdidvp/keyalign/internal/domain/spacing"
)

// CheckRequest describes one project check.
type CheckRequest struct {
	ProjectPath string
	// Paths narrows the run to files or directories relative to ProjectPath.
	Paths []string
	// Changed restricts the run to files git reports as changed.
	Changed bool
	// UseCache reuses results for unchanged files; the config can enable it too.
	UseCache bool
	// Record appends a summary of the run to the history.
	Record      bool
	Concurrency int
}

// CheckService orchestrates the check pipeline:
// load config -> scan -> parse -> check bodies -> cache -> history.
type CheckService struct {
	base
	cache   domain.ResultCache
	history domain.RunHistory
	git     domain.GitInfo
}

// NewCheckService wires a check service. cache, history and git may be nil;
// the features depending on them are then unavailable.
func NewCheckService(
	scanner domain.ProjectScanner,
	parser domain.DeclarationParser,
	configLoader domain.ConfigLoader,
	cache domain.ResultCache,
	history domain.RunHistory,
	git domain.GitInfo,
	opts ...Option,
) *CheckService {
	return &CheckService{
		base:    newBase(scanner, parser, configLoader, opts),
		cache:   cache,
		history: history,
		git:     git,
	}
}

// CheckProject checks every selected file of a project. Files that cannot
// be read or lexed are reported in their FileReport and do not abort the run.
func (s *CheckService) CheckProject(ctx context.Context, req CheckRequest) (*domain.RunReport, error) {
	t, err := s.resolve(req.ProjectPath, req.Paths)
	if err != nil {
		return nil, err
	}

	files := t.files
	if req.Changed {
		files, err = s.changedOnly(req.ProjectPath, files)
		if err != nil {
			return nil, err
		}
	}

	policy := t.config.Policy()
	driver := spacing.NewDriver(policy)

	var lc *domain.LintCache
	useCache := (req.UseCache || t.config.Cache) && s.cache != nil
	if useCache {
		lc = s.loadCache(t.root, policyHash(policy))
	}

	reports := make([]domain.FileReport, len(files))
	hashes := make([]string, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency(req.Concurrency, t.config.Concurrency))
	for i, rel := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			content, err := os.ReadFile(filepath.Join(t.root, filepath.FromSlash(rel)))
			if err != nil {
				s.logger.Warn("skipping unreadable file", "path", rel, "error", err)
				reports[i] = domain.FileReport{Path: rel, Diagnostics: []domain.Diagnostic{}, Error: err.Error()}
				return nil
			}
			hashes[i] = contentHash(content)

			if report, ok := lc.Lookup(rel, hashes[i]); ok {
				s.logger.Debug("cache hit", "path", rel)
				report.Cached = true
				reports[i] = report
				return nil
			}

			report, err := s.lint(driver, rel, content)
			if err != nil {
				s.logger.Warn("skipping unparsable file", "path", rel, "error", err)
				report = domain.FileReport{Path: rel, Diagnostics: []domain.Diagnostic{}, Error: err.Error()}
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if useCache {
		for i, r := range reports {
			if r.Error == "" && !r.Cached {
				lc.Store(r.Path, hashes[i], r)
			}
		}
		if err := s.cache.Save(lc); err != nil {
			return nil, fmt.Errorf("saving cache: %w", err)
		}
	}

	report := &domain.RunReport{
		RunID:       s.newID(),
		ProjectPath: t.root,
		Policy:      policy,
		Files:       reports,
		Timestamp:   s.now().UTC(),
	}
	s.logger.Info("check finished",
		"run_id", report.RunID,
		"files", len(reports),
		"diagnostics", report.DiagnosticCount(),
	)

	if req.Record {
		if err := s.record(t.root, report); err != nil {
			return nil, err
		}
	}
	return report, nil
}

// CheckSource checks a single buffer against raw options without touching
// the filesystem.
func (s *CheckService) CheckSource(path, text string, raw domain.RawOptions) (domain.FileReport, error) {
	if !s.parser.Supports(path) {
		return domain.FileReport{}, fmt.Errorf("%s: unsupported file type", path)
	}
	driver := spacing.NewDriver(domain.Normalize(raw))
	report, err := s.lint(driver, path, []byte(text))
	if err != nil {
		return domain.FileReport{}, fmt.Errorf("checking %s: %w", path, err)
	}
	return report, nil
}

// Config returns the effective project configuration.
func (s *CheckService) Config(projectPath string) (domain.ProjectConfig, error) {
	cfg, err := s.configLoader.Load(projectPath)
	if err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// History returns the recorded run summaries, oldest first.
func (s *CheckService) History(projectPath string) ([]domain.RunSummary, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.Load(projectPath)
}

func (s *CheckService) changedOnly(projectPath string, files []string) ([]string, error) {
	if s.git == nil || !s.git.IsGitRepo(projectPath) {
		return nil, fmt.Errorf("--changed requires a git repository at %s", projectPath)
	}
	changed, err := s.git.ChangedFiles(projectPath)
	if err != nil {
		return nil, fmt.Errorf("listing changed files: %w", err)
	}
	set := make(map[string]bool, len(changed))
	for _, f := range changed {
		set[f] = true
	}
	var out []string
	for _, f := range files {
		if set[f] {
			out = append(out, f)
		}
	}
	s.logger.Debug("restricted to changed files", "changed", len(changed), "selected", len(out))
	return out, nil
}

func (s *CheckService) loadCache(root, hash string) *domain.LintCache {
	lc, err := s.cache.Load(root)
	if err != nil {
		s.logger.Warn("ignoring unreadable cache", "error", err)
	}
	if lc == nil || lc.IsInvalidated(hash) {
		s.logger.Debug("starting fresh cache", "policy_hash", hash)
		return &domain.LintCache{ProjectPath: root, PolicyHash: hash}
	}
	lc.ProjectPath = root
	return lc
}

func (s *CheckService) record(root string, report *domain.RunReport) error {
	if s.history == nil {
		return fmt.Errorf("recording run: no history store configured")
	}
	commit := ""
	if s.git != nil && s.git.IsGitRepo(root) {
		if hash, err := s.git.CommitHash(root); err == nil {
			commit = hash
		}
	}
	if err := s.history.Save(root, report.Summary(commit)); err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}
