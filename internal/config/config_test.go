package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "gemini-2.5-pro", cfg.LLM.Model)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout.Duration)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.DesktopNotifications())
	assert.True(t, cfg.Bell())
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
[storage]
db_path = "/tmp/ff.db"

[log]
level = "debug"

[llm]
provider = "openai"
timeout = "15s"

[notify]
desktop = false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/ff.db", cfg.Storage.DBPath)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model, "model defaults per provider")
	assert.Equal(t, 15*time.Second, cfg.LLM.Timeout.Duration)
	assert.False(t, cfg.DesktopNotifications())
	assert.True(t, cfg.Bell())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
[llm]
provider = "openai"
`)
	t.Setenv("FOCUSFLOW_LLM_PROVIDER", "anthropic")
	t.Setenv("FOCUSFLOW_BELL", "false")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.False(t, cfg.Bell())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown provider", "[llm]\nprovider = \"cohere\"\n"},
		{"bad level", "[log]\nlevel = \"loud\"\n"},
		{"bad duration", "[llm]\ntimeout = \"soon\"\n"},
		{"malformed toml", "[llm\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestDefaultPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/xdg", "focusflow", "config.toml"), p)
}
