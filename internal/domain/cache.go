package domain

// LintCache maps files to their last results. It is only valid for the
// policy it was produced with.
type LintCache struct {
	ProjectPath string                `json:"project_path"`
	PolicyHash  string                `json:"policy_hash"`
	Files       map[string]CachedFile `json:"files"`
}

type CachedFile struct {
	ContentHash string     `json:"content_hash"`
	Report      FileReport `json:"report"`
}

func (c *LintCache) IsInvalidated(policyHash string) bool {
	return c.PolicyHash != policyHash
}

// Lookup returns the cached report for path if its content is unchanged.
func (c *LintCache) Lookup(path, contentHash string) (FileReport, bool) {
	if c == nil || c.Files == nil {
		return FileReport{}, false
	}
	entry, ok := c.Files[path]
	if !ok || entry.ContentHash != contentHash {
		return FileReport{}, false
	}
	return entry.Report, true
}

func (c *LintCache) Store(path, contentHash string, report FileReport) {
	if c.Files == nil {
		c.Files = make(map[string]CachedFile)
	}
	report.Cached = false
	c.Files[path] = CachedFile{ContentHash: contentHash, Report: report}
}
