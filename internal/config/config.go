// Package config holds the settings of the mzidtool command. They are
// read from an optional YAML file, command line flags override them.
package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/524D/mzidtool/internal/cv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config contains all settings
type Config struct {
	LogLevel string        `yaml:"log_level"`
	Workers  int           `yaml:"workers"`
	Rerank   RerankConfig  `yaml:"rerank"`
	Export   ExportConfig  `yaml:"export"`
	Metrics  MetricsConfig `yaml:"metrics"`
}

// RerankConfig sets the score used by the rerank command
type RerankConfig struct {
	// ScoreTerm is the stable term id of the score, lower is better
	ScoreTerm string `yaml:"score_term"`
	// Prune keeps only the best scoring items of each result
	Prune bool `yaml:"prune"`
}

// ExportConfig sets the output of the summary command
type ExportConfig struct {
	Format string `yaml:"format"` // tsv or sqlite
	Table  string `yaml:"table"`
}

// MetricsConfig sets where metrics are written
type MetricsConfig struct {
	// Textfile is written in the Prometheus text format after each command.
	// Empty disables it.
	Textfile string `yaml:"textfile"`
}

// Default returns the settings used when there is no config file
func Default() Config {
	return Config{
		LogLevel: "info",
		Workers:  4,
		Rerank: RerankConfig{
			ScoreTerm: string(cv.MSGFSpecEValue),
		},
		Export: ExportConfig{
			Format: "tsv",
			Table:  "psm",
		},
	}
}

// Load reads the config file at path on top of the defaults. An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "failed to read the config file")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "failed to parse %s", path)
	}
	return cfg, cfg.Validate()
}

// Validate reports the first invalid setting
func (c Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.Workers < 1 {
		return errors.Errorf("config: workers must be at least 1, got %d", c.Workers)
	}
	if t := cv.TermID(c.Rerank.ScoreTerm); t.Prefix() == "" {
		return errors.Errorf("config: rerank.score_term %q is not a term id like MS:1002052", c.Rerank.ScoreTerm)
	}
	switch c.Export.Format {
	case "tsv", "sqlite":
	default:
		return errors.Errorf("config: export.format must be tsv or sqlite, got %q", c.Export.Format)
	}
	if c.Export.Format == "sqlite" && c.Export.Table == "" {
		return errors.New("config: export.table is required for sqlite")
	}
	return nil
}

// Level returns the slog level of LogLevel
func (c Config) Level() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, errors.Errorf("config: unknown log_level %q", c.LogLevel)
}
