package domain

// MaxFixPasses bounds the fix loop. Edits dropped for overlapping a
// previous one, or uncovered by an earlier change, are picked up on the
// next pass.
const MaxFixPasses = 10

// FixOptions controls a fix run.
type FixOptions struct {
	DryRun    bool `json:"dry_run"`
	MaxPasses int  `json:"max_passes,omitempty"`
}

// Passes returns the configured pass limit, MaxFixPasses when unset.
func (o FixOptions) Passes() int {
	if o.MaxPasses <= 0 {
		return MaxFixPasses
	}
	return o.MaxPasses
}

// TextFix is the outcome of fixing one buffer.
type TextFix struct {
	Text      string `json:"text"`
	Applied   int    `json:"applied"`
	Passes    int    `json:"passes"`
	Remaining int    `json:"remaining"`
}

// Changed reports whether any edit was applied.
func (f TextFix) Changed() bool { return f.Applied > 0 }

// FixText applies the edits returned by check until none remain or the
// pass limit is reached. check is called on the current text each pass.
func FixText(text string, maxPasses int, check func(text string) ([]Edit, error)) (TextFix, error) {
	if maxPasses <= 0 {
		maxPasses = MaxFixPasses
	}
	result := TextFix{Text: text}
	for result.Passes < maxPasses {
		edits, err := check(result.Text)
		if err != nil {
			return result, err
		}
		if len(edits) == 0 {
			return result, nil
		}
		next, applied, err := ApplyEdits(result.Text, edits)
		if err != nil {
			return result, err
		}
		if applied == 0 {
			result.Remaining = len(edits)
			return result, nil
		}
		result.Passes++
		result.Text = next
		result.Applied += applied
	}

	edits, err := check(result.Text)
	if err != nil {
		return result, err
	}
	result.Remaining = len(edits)
	return result, nil
}

// FileFix is the outcome of fixing one file of a project.
type FileFix struct {
	Path      string `json:"path"`
	Applied   int    `json:"applied"`
	Passes    int    `json:"passes"`
	Remaining int    `json:"remaining,omitempty"`
	Error     string `json:"error,omitempty"`
}

// FixResult is the outcome of a fix run.
type FixResult struct {
	RunID  string    `json:"run_id"`
	DryRun bool      `json:"dry_run"`
	Files  []FileFix `json:"files"`
}

func (r *FixResult) AppliedCount() int {
	n := 0
	for _, f := range r.Files {
		n += f.Applied
	}
	return n
}

// ChangedCount counts files with at least one applied edit.
func (r *FixResult) ChangedCount() int {
	n := 0
	for _, f := range r.Files {
		if f.Applied > 0 {
			n++
		}
	}
	return n
}

func (r *FixResult) RemainingCount() int {
	n := 0
	for _, f := range r.Files {
		n += f.Remaining
	}
	return n
}
