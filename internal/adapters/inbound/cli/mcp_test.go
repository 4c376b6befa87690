package cli_test

import (
	"bytes"
	"io"
	"log/slog"
	"sort"
	"testing"

	"github.com/abdidvp/keyalign/internal/adapters/inbound/cli"
	mcpadapter "github.com/abdidvp/keyalign/internal/adapters/inbound/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func helpFor(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--help"))
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestMCPCommandListsServe(t *testing.T) {
	help := helpFor(t, "mcp")
	assert.Contains(t, help, "keyalign MCP (Model Context Protocol) server")
	assert.Contains(t, help, "serve")
}

func TestMCPServeDescribesTools(t *testing.T) {
	help := helpFor(t, "mcp", "serve")
	assert.Contains(t, help, "stdio transport")
	assert.Contains(t, help, "option normalization")
	assert.Contains(t, help, "--path")
}

func TestMCPServerRegistersKeyalignTools(t *testing.T) {
	s := mcpadapter.NewKeyalignMCPServer(t.TempDir(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	var names []string
	for name := range s.ListTools() {
		names = append(names, name)
	}
	sort.Strings(names)
	assert.Equal(t, []string{
		"keyalign_check_project",
		"keyalign_check_source",
		"keyalign_fix_source",
		"keyalign_normalize_options",
	}, names)
}
