package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func styleCommand(t *testing.T, args ...string) (*cobra.Command, []setting) {
	t.Helper()
	var sink []setting
	cmd := &cobra.Command{Use: "x"}
	cmd.Flags().String("options", "", "")
	cmd.Flags().Bool("no-options", false, "")
	addStyleFlags(cmd.Flags(), &sink)
	require.NoError(t, cmd.Flags().Parse(args))
	return cmd, sink
}

func TestStyleFlagsKeepOrder(t *testing.T) {
	_, sink := styleCommand(t, "--no-options", "--indent-length=2", "--pad-oper", "--indent-length", "3")
	assert.Equal(t, []setting{
		{key: "indent-length", value: "2"},
		{key: "pad-oper", value: "true"},
		{key: "indent-length", value: "3"},
	}, sink)
}

func TestLoadStyleCommandLineWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opts.toml")
	require.NoError(t, os.WriteFile(path, []byte("indent-length = 8\npad-comma = true\nexclude = \"vendor, *_gen.c\"\n"), 0o644))

	cmd, sink := styleCommand(t, "--options", path, "--indent-length=3")
	loaded, err := loadStyle(cmd, sink)
	require.NoError(t, err)
	assert.Equal(t, path, loaded.optionsFile)
	assert.Equal(t, 3, loaded.opts.IndentLength)
	assert.True(t, loaded.opts.PadComma)
	assert.Equal(t, []string{"vendor", "*_gen.c"}, loaded.exclude)
}

func TestLoadStyleRejectsBadValue(t *testing.T) {
	cmd, sink := styleCommand(t, "--no-options", "--indent-length=wide")
	_, err := loadStyle(cmd, sink)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--indent-length")
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiAuto, "auto": uiAuto, "ON": uiOn, " off ": uiOff} {
		got, err := readUIMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := readUIMode("sometimes")
	assert.Error(t, err)
	assert.True(t, shouldUseTUI(uiOn))
	assert.False(t, shouldUseTUI(uiOff))
}

func TestTablesCommand(t *testing.T) {
	cmd := &cobra.Command{Use: "tables", RunE: runTables}
	cmd.Flags().String("lang", "c", "")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--lang", "java", "assignment-operators"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "+=\n")
	assert.NotContains(t, out.String(), "# ")

	cmd.SetArgs([]string{"no-such-table"})
	assert.Error(t, cmd.Execute())
}
