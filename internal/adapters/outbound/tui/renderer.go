package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/abdidvp/keyalign/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	fileStyle     = lipgloss.NewStyle().Underline(true).Foreground(fg)
	kindStyle     = lipgloss.NewStyle().Foreground(accent)
	hintStyle     = lipgloss.NewStyle().Foreground(dim).Italic(true)
)

var colorEnabled = true

// SetColor turns styling on or off for every renderer in the package.
func SetColor(enabled bool) {
	colorEnabled = enabled
}

func paint(style lipgloss.Style, s string) string {
	if !colorEnabled {
		return s
	}
	return style.Render(s)
}

// RenderReport formats a run report in the stylish layout: one block per
// file with line:column, message kind and message per diagnostic, followed
// by a summary line.
func RenderReport(report *domain.RunReport) string {
	var b strings.Builder

	files := 0
	for _, f := range report.Files {
		if len(f.Diagnostics) == 0 && f.Error == "" && len(f.BodyErrors) == 0 {
			continue
		}
		files++
		renderFile(&b, f)
	}

	total := report.DiagnosticCount()
	failed := report.FailedFiles()
	if total == 0 && failed == 0 {
		b.WriteString("  " + paint(passStyle, fmt.Sprintf("✔ No spacing problems in %s.", plural(len(report.Files), "file"))) + "\n")
		return b.String()
	}

	b.WriteString("\n")
	summary := fmt.Sprintf("✖ %s in %s", plural(total, "problem"), plural(files, "file"))
	if fixable := report.FixableCount(); fixable > 0 {
		summary += fmt.Sprintf(" (%d fixable with `keyalign fix`)", fixable)
	}
	b.WriteString("  " + paint(errorTagStyle, summary) + "\n")
	if failed > 0 {
		b.WriteString("  " + paint(warnStyle, fmt.Sprintf("%s could not be read", plural(failed, "file"))) + "\n")
	}
	return b.String()
}

func renderFile(b *strings.Builder, f domain.FileReport) {
	b.WriteString(paint(fileStyle, f.Path))
	if f.Cached {
		b.WriteString(" " + paint(faintStyle, "(cached)"))
	}
	b.WriteString("\n")

	if f.Error != "" {
		fmt.Fprintf(b, "  %s  %s\n", paint(failStyle, "error"), f.Error)
	}
	for _, be := range f.BodyErrors {
		fmt.Fprintf(b, "  %s  %s %s: %s\n", paint(warnStyle, "skip "), be.Kind, be.Body, be.Message)
	}

	diags := make([]domain.Diagnostic, len(f.Diagnostics))
	copy(diags, f.Diagnostics)
	sort.SliceStable(diags, func(i, j int) bool {
		return diags[i].Location.Start < diags[j].Location.Start
	})

	locWidth, kindWidth := 0, 0
	for _, d := range diags {
		locWidth = max(locWidth, len(location(d)))
		kindWidth = max(kindWidth, len(d.Kind.Label()))
	}
	for _, d := range diags {
		loc := padRight(location(d), locWidth)
		kind := padRight(d.Kind.Label(), kindWidth)
		fmt.Fprintf(b, "  %s  %s  %s\n", paint(dimStyle, loc), paint(kindStyle, kind), d.Message)
	}
	b.WriteString("\n")
}

func location(d domain.Diagnostic) string {
	return fmt.Sprintf("%d:%d", d.Start.Line, d.Start.Column)
}

// RenderFixResult summarizes a fix run.
func RenderFixResult(result *domain.FixResult) string {
	var b strings.Builder
	verb := "Fixed"
	if result.DryRun {
		verb = "Would fix"
	}
	for _, f := range result.Files {
		if f.Applied == 0 {
			continue
		}
		fmt.Fprintf(&b, "  %s %s  %s\n",
			paint(passStyle, "●"),
			paint(fileStyle, f.Path),
			paint(dimStyle, fmt.Sprintf("%s in %s", plural(f.Applied, "edit"), plural(f.Passes, "pass"))),
		)
	}
	for _, f := range result.Files {
		if f.Error != "" {
			fmt.Fprintf(&b, "  %s %s  %s\n", paint(failStyle, "●"), paint(fileStyle, f.Path), f.Error)
		}
	}

	if result.AppliedCount() == 0 {
		b.WriteString("  " + paint(passStyle, "Nothing to fix.") + "\n")
		return b.String()
	}
	b.WriteString("\n  " + paint(titleStyle, fmt.Sprintf("%s %s in %s.", verb, plural(result.AppliedCount(), "spacing problem"), plural(result.ChangedCount(), "file"))) + "\n")
	if remaining := result.RemainingCount(); remaining > 0 {
		b.WriteString("  " + paint(warnStyle, fmt.Sprintf("%s left after the pass limit.", plural(remaining, "problem"))) + "\n")
	}
	if result.DryRun {
		b.WriteString("  " + paint(hintStyle, "Dry run: no files were written.") + "\n")
	}
	return b.String()
}

// RenderPolicy prints a normalized policy as a rule table.
func RenderPolicy(p domain.Policy) string {
	var b strings.Builder
	b.WriteString("\n  " + paint(titleStyle, "Effective spacing policy") + "\n")
	b.WriteString("  " + paint(faintStyle, strings.Repeat("─", 50)) + "\n")
	renderRule(&b, "singleLine", p.SingleLine.Mode, "-", p.SingleLine.BeforeColon, p.SingleLine.AfterColon)
	renderRule(&b, "multiLine", p.MultiLine.Mode, "-", p.MultiLine.BeforeColon, p.MultiLine.AfterColon)
	if a := p.Align; a != nil {
		renderRule(&b, "align", a.Mode, string(a.On), a.BeforeColon, a.AfterColon)
	} else {
		fmt.Fprintf(&b, "  %s  %s\n", paint(kindStyle, padRight("align", 12)), paint(dimStyle, "off"))
	}
	return b.String()
}

func renderRule(b *strings.Builder, name string, mode domain.Mode, on string, before, after int) {
	fmt.Fprintf(b, "  %s  mode=%s on=%s beforeColon=%d afterColon=%d\n",
		paint(kindStyle, padRight(name, 12)), mode, on, before, after)
}

// RenderHistory formats run history for terminal output.
func RenderHistory(entries []domain.RunSummary) string {
	if len(entries) == 0 {
		return "  " + paint(dimStyle, "No run history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + paint(titleStyle, "Run History") + "\n")
	b.WriteString("  " + paint(faintStyle, strings.Repeat("─", 50)) + "\n\n")

	for i, e := range entries {
		hash := e.CommitHash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		if hash == "" {
			hash = "·······"
		}
		date := e.Timestamp
		if len(date) > 10 {
			date = date[:10]
		}

		line := fmt.Sprintf("  %s  %s  %s  %s",
			paint(dimStyle, date),
			paint(faintStyle, hash),
			padRight(plural(e.Diagnostics, "problem"), 12),
			paint(dimStyle, plural(e.Files, "file")),
		)
		if i > 0 {
			diff := e.Diagnostics - entries[i-1].Diagnostics
			if diff < 0 {
				line += "  " + paint(passStyle, fmt.Sprintf("↓%d", -diff))
			} else if diff > 0 {
				line += "  " + paint(failStyle, fmt.Sprintf("↑%d", diff))
			}
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	if strings.HasSuffix(word, "s") {
		return fmt.Sprintf("%d %ses", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
