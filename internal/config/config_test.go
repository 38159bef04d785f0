package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "MS:1002052", cfg.Rerank.ScoreTerm)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mzidtool.yaml")
	data := `
log_level: debug
workers: 2
rerank:
  score_term: MS:1002053
  prune: true
export:
  format: sqlite
  table: results
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Workers)
	assert.True(t, cfg.Rerank.Prune)
	assert.Equal(t, "MS:1002053", cfg.Rerank.ScoreTerm)
	assert.Equal(t, "sqlite", cfg.Export.Format)
	assert.Equal(t, "results", cfg.Export.Table)
	// Not in the file, so the default stays
	assert.Equal(t, "", cfg.Metrics.Textfile)
	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
		{"workers", func(c *Config) { c.Workers = 0 }},
		{"score term", func(c *Config) { c.Rerank.ScoreTerm = "SpecEValue" }},
		{"format", func(c *Config) { c.Export.Format = "xlsx" }},
		{"table", func(c *Config) { c.Export.Format = "sqlite"; c.Export.Table = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: [1, 2"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("workers: -1"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}
