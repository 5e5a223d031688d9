package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "university.db", cfg.Database.Path)
	assert.Equal(t, "WAL", cfg.Database.JournalMode)
	assert.Equal(t, 5*time.Second, cfg.BusyTimeout())
	assert.True(t, cfg.Seed.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
database:
  path: /tmp/campus.db
  busy_timeout: 2s
  journal_mode: delete
seed:
  enabled: false
logging:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Run("file values", func(t *testing.T) {
		cfg, err := LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, "/tmp/campus.db", cfg.Database.Path)
		assert.Equal(t, "DELETE", cfg.Database.JournalMode)
		assert.Equal(t, 2*time.Second, cfg.BusyTimeout())
		assert.False(t, cfg.Seed.Enabled)
		assert.Equal(t, "json", cfg.Logging.Format)
	})

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv("UNIADMIN_DB_PATH", "/var/lib/uniadmin/override.db")
		t.Setenv("UNIADMIN_SEED_ENABLED", "TRUE")

		cfg, err := LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, "/var/lib/uniadmin/override.db", cfg.Database.Path)
		assert.True(t, cfg.Seed.Enabled)
	})
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "bad bool", env: map[string]string{"UNIADMIN_SEED_ENABLED": "sometimes"}},
		{name: "bad timeout", env: map[string]string{"UNIADMIN_DB_BUSY_TIMEOUT": "soon"}},
		{name: "bad journal mode", env: map[string]string{"UNIADMIN_DB_JOURNAL_MODE": "fast"}},
		{name: "empty path", env: map[string]string{"UNIADMIN_DB_PATH": "  "}},
		{name: "bad log format", env: map[string]string{"LOG_FORMAT": "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig("")
			assert.Error(t, err)
		})
	}
}
