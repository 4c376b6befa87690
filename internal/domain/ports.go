package domain

// Span is a half-open byte range [Start, End).
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (s Span) Len() int { return s.End - s.Start }

// Position is a human-readable location. Line and Column are 1-based; Column
// counts characters, not bytes.
type Position struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

// TokenBounds are the tokens (comments included) on either side of a separator.
type TokenBounds struct {
	Before Span
	After  Span
}

// Source is a read-only view of one file's text and token stream.
type Source interface {
	Len() int
	SliceText(start, end int) string
	// TokensAround returns the tokens adjacent to the token starting at
	// offset. ok is false when offset does not start a token or either
	// neighbour is missing.
	TokensAround(offset int) (bounds TokenBounds, ok bool)
	Position(offset int) Position
}

// DeclarationParser turns file content into declaration bodies.
type DeclarationParser interface {
	ParseFile(path string, content []byte) (*ParsedFile, error)
	Supports(path string) bool
}

// ConfigLoader loads project configuration.
type ConfigLoader interface {
	Load(projectPath string) (ProjectConfig, error)
}

// ProjectScanner lists lintable files below a project root.
type ProjectScanner interface {
	Scan(projectPath string, include, exclude []string) (*ScanResult, error)
}

// ScanResult holds the files found below a project root.
type ScanResult struct {
	RootPath string   `json:"root_path"`
	Files    []string `json:"files"`
}

// ResultCache persists per-file results between runs.
type ResultCache interface {
	Load(projectPath string) (*LintCache, error)
	Save(cache *LintCache) error
	Invalidate(projectPath string) error
}

// RunHistory records run summaries.
type RunHistory interface {
	Save(projectPath string, entry RunSummary) error
	Load(projectPath string) ([]RunSummary, error)
}

// GitInfo answers repository questions about a project.
type GitInfo interface {
	IsGitRepo(projectPath string) bool
	CommitHash(projectPath string) (string, error)
	ChangedFiles(projectPath string) ([]string, error)
}
