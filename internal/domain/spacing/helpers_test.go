package spacing_test

import (
	"testing"

	"github.com/abdidvp/keyalign/internal/adapters/outbound/parser"
	"github.com/abdidvp/keyalign/internal/domain"
	"github.com/abdidvp/keyalign/internal/domain/spacing"
	"github.com/stretchr/testify/require"
)

func parseTS(t *testing.T, src string) *domain.ParsedFile {
	t.Helper()
	file, err := parser.New().ParseFile("fixture.ts", []byte(src))
	require.NoError(t, err)
	return file
}

func check(t *testing.T, src string, policy domain.Policy) []domain.Diagnostic {
	t.Helper()
	report := spacing.NewDriver(policy).CheckFile(parseTS(t, src))
	require.Empty(t, report.BodyErrors)
	return report.Diagnostics
}

// fixAll applies edits until the source stops changing.
func fixAll(t *testing.T, src string, policy domain.Policy) string {
	t.Helper()
	for pass := 0; pass < 10; pass++ {
		diags := check(t, src, policy)
		if len(diags) == 0 {
			return src
		}
		edits := make([]domain.Edit, 0, len(diags))
		for _, d := range diags {
			require.NotNil(t, d.Edit)
			edits = append(edits, *d.Edit)
		}
		out, applied, err := domain.ApplyEdits(src, edits)
		require.NoError(t, err)
		require.Positive(t, applied)
		src = out
	}
	t.Fatalf("fixes did not converge:\n%s", src)
	return src
}

func str(s string) *string { return &s }

func width(n int) *domain.Width {
	w := domain.Width(n)
	return &w
}

func alignOn(on string) domain.Policy {
	return domain.Normalize(domain.RawOptions{Shorthand: on})
}

func withMode(mode string) domain.Policy {
	return domain.Normalize(domain.RawOptions{RawRule: domain.RawRule{Mode: str(mode)}})
}
