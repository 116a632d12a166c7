package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := NewRootCmd()
	names := make([]string, 0)
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"compile", "tables", "describe", "extract", "delta", "ddl", "version", "completion"} {
		assert.Contains(t, names, want)
	}

	for _, flag := range []string{"config", "target", "verbose", "output"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRootCmd_CompileUsesConfiguredTarget(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "sqlconnect.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
targets:
  erp:
    type: informix
    database: stores
  warehouse:
    type: postgres
    database: analytics
`), 0o600))
	queryPath := filepath.Join(dir, "q.json")
	require.NoError(t, os.WriteFile(queryPath, []byte(`{"baseTable": "orders", "selectedFields": [{"field": "id"}]}`), 0o600))

	out, _, err := execute(t, "--config", cfgPath, "--target", "warehouse", "compile", queryPath, "--preview", "3")
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM (SELECT id\nFROM orders) AS preview LIMIT 3;\n", out)

	out, _, err = execute(t, "--config", cfgPath, "-t", "erp", "compile", queryPath, "--preview", "3")
	require.NoError(t, err)
	assert.Equal(t, "SELECT FIRST 3 * FROM (SELECT id\nFROM orders);\n", out)
}

func TestRootCmd_VerboseLogsConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "sqlconnect.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output: json\n"), 0o600))

	out, errOut, err := execute(t, "--config", cfgPath, "-v", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "sqlconnect v"+Version)
	assert.Contains(t, errOut, "using config file")
	assert.Contains(t, errOut, cfgPath)
}

func TestRootCmd_ConfigErrors(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "sqlconnect.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output: xml\n"), 0o600))

	_, _, err := execute(t, "--config", cfgPath, "version")
	assert.ErrorContains(t, err, "invalid output format")

	_, _, err = execute(t, "--config", cfgPath, "--output", "yaml", "version")
	assert.NoError(t, err, "flag overrides the file value")
}

func TestCompletionCommand(t *testing.T) {
	out, _, err := execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "sqlconnect")

	_, _, err = execute(t, "completion", "tcsh")
	assert.Error(t, err)
}
