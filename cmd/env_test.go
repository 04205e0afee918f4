package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/focusflow/internal/analysis"
)

// newTestCmd returns a command carrying the persistent flags of rootCmd,
// pointed at a temp config and database, with output captured.
func newTestCmd(t *testing.T, dbPath string) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("FOCUSFLOW_LOG", filepath.Join(dir, "focusflow.log"))
	t.Setenv("FOCUSFLOW_LLM_PROVIDER", "mock")

	c := &cobra.Command{Use: "test"}
	c.Flags().String("config", filepath.Join(dir, "missing.toml"), "")
	c.Flags().String("db", dbPath, "")
	var out bytes.Buffer
	c.SetOut(&out)
	return c, &out
}

func TestOpenEnv_StoreFailureIsLogged(t *testing.T) {
	dir := t.TempDir()
	// A regular file where the database directory should be.
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	c, _ := newTestCmd(t, filepath.Join(blocker, "focusflow.db"))
	env, err := openEnv(c)
	require.Error(t, err)
	assert.Nil(t, env)

	data, err := os.ReadFile(os.Getenv("FOCUSFLOW_LOG"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "startup failed", "the failure is flushed to the log")
}

func TestOpenEnv_Opens(t *testing.T) {
	c, _ := newTestCmd(t, filepath.Join(t.TempDir(), "focusflow.db"))
	env, err := openEnv(c)
	require.NoError(t, err)
	defer env.Close()
	assert.Empty(t, env.ctrl.Sessions())
}

func TestHistory_WritesToCommandOutput(t *testing.T) {
	c, out := newTestCmd(t, filepath.Join(t.TempDir(), "focusflow.db"))
	require.NoError(t, historyCmd.RunE(c, nil))
	assert.Contains(t, out.String(), "No sessions since the last analysis.")
}

func TestPrintAnalysis(t *testing.T) {
	var buf bytes.Buffer
	printAnalysis(&buf, analysis.Analysis{
		SessionCount:       2,
		TotalStudyDuration: 70,
		Concentration:      80,
		Stress:             30,
		Summary:            "Steady week.",
		Suggestions:        []string{"Take longer breaks"},
	})
	out := buf.String()
	for _, want := range []string{"Analysis of 2 sessions (70 min)", "(stress 30)", "Steady week.", "- Take longer breaks"} {
		assert.True(t, strings.Contains(out, want), "missing %q in\n%s", want, out)
	}
}
