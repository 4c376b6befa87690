package domain

import "time"

// BodyError records a declaration body that could not be checked.
type BodyError struct {
	Body    string   `json:"body"`
	Kind    BodyKind `json:"kind"`
	Message string   `json:"message"`
}

// FileReport is the result of checking one file.
type FileReport struct {
	Path        string       `json:"path"`
	Diagnostics []Diagnostic `json:"diagnostics"`
	BodyErrors  []BodyError  `json:"body_errors,omitempty"`
	Error       string       `json:"error,omitempty"`
	Cached      bool         `json:"cached,omitempty"`
}

// FixableCount returns how many diagnostics carry an edit.
func (r FileReport) FixableCount() int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Fixable() {
			n++
		}
	}
	return n
}

// Edits collects the edits of all fixable diagnostics.
func (r FileReport) Edits() []Edit {
	var edits []Edit
	for _, d := range r.Diagnostics {
		if d.Edit != nil {
			edits = append(edits, *d.Edit)
		}
	}
	return edits
}

// RunReport is the result of checking a set of files.
type RunReport struct {
	RunID       string       `json:"run_id"`
	ProjectPath string       `json:"project_path"`
	Policy      Policy       `json:"policy"`
	Files       []FileReport `json:"files"`
	Timestamp   time.Time    `json:"timestamp"`
}

func (r *RunReport) DiagnosticCount() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Diagnostics)
	}
	return n
}

func (r *RunReport) FixableCount() int {
	n := 0
	for _, f := range r.Files {
		n += f.FixableCount()
	}
	return n
}

// FailedFiles counts files that could not be read or lexed.
func (r *RunReport) FailedFiles() int {
	n := 0
	for _, f := range r.Files {
		if f.Error != "" {
			n++
		}
	}
	return n
}

// Summary condenses the report into a history entry.
func (r *RunReport) Summary(commitHash string) RunSummary {
	return RunSummary{
		RunID:       r.RunID,
		Timestamp:   r.Timestamp.Format(time.RFC3339),
		CommitHash:  commitHash,
		Files:       len(r.Files),
		Diagnostics: r.DiagnosticCount(),
		Fixable:     r.FixableCount(),
	}
}

// RunSummary is one entry in the run history.
type RunSummary struct {
	RunID       string `json:"run_id"`
	Timestamp   string `json:"timestamp"`
	CommitHash  string `json:"commit_hash,omitempty"`
	Files       int    `json:"files"`
	Diagnostics int    `json:"diagnostics"`
	Fixable     int    `json:"fixable"`
}
