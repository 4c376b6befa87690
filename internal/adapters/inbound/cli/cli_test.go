package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdidvp/keyalign/internal/adapters/inbound/cli"
	"github.com/abdidvp/keyalign/internal/domain"
)

const (
	misaligned = "interface Shape {\n  a: string;\n  bb  : number;\n}\n"
	fixed      = "interface Shape {\n  a: string;\n  bb: number;\n}\n"
)

func init() {
	os.Setenv("KEYALIGN_NO_COLOR", "1")
}

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

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCheckCommand_ReportsProblems(t *testing.T) {
	dir := writeProject(t, map[string]string{"src/a.ts": misaligned})

	out, err := run(t, "check", "--root", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "found 1 spacing problems (max 0)")
	assert.Contains(t, out, "src/a.ts")
	assert.Contains(t, out, "3:5  extra key  Extra space after key 'bb'.")
	assert.Contains(t, out, "1 problem in 1 file")
}

func TestCheckCommand_MaxWarnings(t *testing.T) {
	dir := writeProject(t, map[string]string{"a.ts": misaligned})

	_, err := run(t, "check", "--root", dir, "--max-warnings", "1")
	assert.NoError(t, err)

	_, err = run(t, "check", "--root", dir, "--max-warnings", "-1")
	assert.NoError(t, err)
}

func TestCheckCommand_Clean(t *testing.T) {
	dir := writeProject(t, map[string]string{"a.ts": fixed})

	out, err := run(t, "check", "--root", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No spacing problems in 1 file.")
}

func TestCheckCommand_JSON(t *testing.T) {
	dir := writeProject(t, map[string]string{"a.ts": misaligned})

	out, err := run(t, "check", "--root", dir, "--json", "--max-warnings", "-1")
	require.NoError(t, err)

	var report domain.RunReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.NotEmpty(t, report.RunID)
	require.Len(t, report.Files, 1)
	assert.Equal(t, domain.ExtraKey, report.Files[0].Diagnostics[0].Kind)
}

func TestCheckCommand_JSONFromConfig(t *testing.T) {
	dir := writeProject(t, map[string]string{".keyalign.yaml": "format: json\n", "a.ts": fixed})

	out, err := run(t, "check", "--root", dir)
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)))
}

func TestCheckCommand_Paths(t *testing.T) {
	dir := writeProject(t, map[string]string{"src/a.ts": fixed, "lib/b.ts": misaligned})

	_, err := run(t, "check", "--root", dir, filepath.Join(dir, "src"))
	assert.NoError(t, err)

	_, err = run(t, "check", "--root", filepath.Join(dir, "src"), filepath.Join(dir, "lib"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside the project root")
}

func TestCheckCommand_FixDryRun(t *testing.T) {
	dir := writeProject(t, map[string]string{"a.ts": misaligned})

	out, err := run(t, "check", "--root", dir, "--fix-dry-run")
	require.Error(t, err)
	assert.Contains(t, out, "Would fix 1 spacing problem in 1 file.")

	data, err := os.ReadFile(filepath.Join(dir, "a.ts"))
	require.NoError(t, err)
	assert.Equal(t, misaligned, string(data))
}

func TestCheckCommand_RecordAndHistory(t *testing.T) {
	dir := writeProject(t, map[string]string{"a.ts": misaligned})

	_, err := run(t, "check", "--root", dir, "--record", "--cache", "--max-warnings", "-1")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, ".keyalign", "history", "runs.json"))
	assert.FileExists(t, filepath.Join(dir, ".keyalign", "cache", "results.json"))

	out, err := run(t, "check", "--root", dir, "--history")
	require.NoError(t, err)
	assert.Contains(t, out, "Run History")
	assert.Contains(t, out, "1 problem")
}

func TestCheckCommand_ExplicitConfig(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"a.ts":        misaligned,
		"custom.yaml": "options:\n  mode: minimum\n",
	})

	_, err := run(t, "check", "--root", dir, "--config", filepath.Join(dir, "custom.yaml"))
	require.Error(t, err, "minimum mode still reports the extra space before a colon expected at zero")

	_, err = run(t, "check", "--root", dir, "--config", filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.yaml")
}

func TestCheckCommand_ConfigFromEnv(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"a.ts":        "interface A {\n  a:  string;\n}\n",
		"custom.yaml": "options:\n  afterColon: 2\n",
	})
	t.Setenv("KEYALIGN_CONFIG", filepath.Join(dir, "custom.yaml"))

	_, err := run(t, "check", "--root", dir)
	assert.NoError(t, err)
}

func TestCheckCommand_InvalidConfig(t *testing.T) {
	dir := writeProject(t, map[string]string{".keyalign.yaml": "options:\n  align: middle\n"})

	_, err := run(t, "check", "--root", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid .keyalign.yaml")
}

func TestFixCommand(t *testing.T) {
	dir := writeProject(t, map[string]string{"a.ts": misaligned})

	out, err := run(t, "fix", "--root", dir, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Dry run")

	out, err = run(t, "fix", "--root", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Fixed 1 spacing problem in 1 file.")

	data, err := os.ReadFile(filepath.Join(dir, "a.ts"))
	require.NoError(t, err)
	assert.Equal(t, fixed, string(data))

	_, err = run(t, "check", "--root", dir)
	assert.NoError(t, err)
}

func TestFixCommand_JSON(t *testing.T) {
	dir := writeProject(t, map[string]string{"a.ts": misaligned})

	out, err := run(t, "fix", "--root", dir, "--json")
	require.NoError(t, err)

	var result domain.FixResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 1, result.AppliedCount())
}

func TestOptionsCommand(t *testing.T) {
	dir := writeProject(t, map[string]string{".keyalign.yaml": "options: value\n"})

	out, err := run(t, "options", "--root", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "on=value")

	out, err = run(t, "options", "--root", dir, "--json")
	require.NoError(t, err)
	var p domain.Policy
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	require.NotNil(t, p.Align)
	assert.Equal(t, domain.AlignValue, p.Align.On)
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "keyalign dev")
}

func TestWatchCommand_MissingRoot(t *testing.T) {
	_, err := run(t, "watch", filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
