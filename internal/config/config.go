// Package config loads catreport configuration from defaults, an optional
// YAML file and environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"catreport/internal/core/apperror"
	"catreport/internal/domain/reports"
	"catreport/internal/infrastructure/csvout"
)

// Config holds all catreport settings.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Report  ReportConfig  `yaml:"report"`
}

// LoggingConfig configures pkg/logger.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// ReportConfig configures report layout and output.
type ReportConfig struct {
	// OutputDir is where the CSV file is written. Empty means the working directory.
	OutputDir string `yaml:"output_dir"`

	// Prefix starts the dated file name.
	Prefix string `yaml:"prefix"`

	// DateColumn is the index of the DD/MM/YYYY column used for sorting.
	DateColumn int `yaml:"date_column"`

	// Steps are the post-processing steps, applied in order.
	Steps []string `yaml:"steps"`

	Columns []reports.Column `yaml:"columns"`
}

// Post-processing step names.
const (
	StepStripMarkup = "strip-markup"
	StepSortByDate  = "sort-by-date"
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: "info",
		},
		Report: ReportConfig{
			Prefix:     csvout.DefaultPrefix,
			DateColumn: reports.DefaultDateColumn,
			Steps:      []string{StepStripMarkup, StepSortByDate},
			Columns:    reports.DefaultColumns(),
		},
	}
}

// Load reads configuration from a YAML file over the defaults and applies
// environment overrides. An empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, apperror.NewIO("read config", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, apperror.NewInvalidConfig("failed to parse config").
					WithDetail("path", path).
					WithCause(err)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	c.Logging.Level = getEnv("LOG_LEVEL", c.Logging.Level)
	if env := os.Getenv("APP_ENV"); env != "" {
		c.Logging.Development = env == "development"
	}

	c.Report.OutputDir = getEnv("CATREPORT_OUT_DIR", c.Report.OutputDir)
	c.Report.Prefix = getEnv("CATREPORT_PREFIX", c.Report.Prefix)
	c.Report.DateColumn = getEnvInt("CATREPORT_DATE_COLUMN", c.Report.DateColumn)
	if steps := os.Getenv("CATREPORT_STEPS"); steps != "" {
		c.Report.Steps = splitList(steps)
	}
}

// Validate reports every problem at once as a single INVALID_CONFIG error.
func (c *Config) Validate() error {
	var problems []string

	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		problems = append(problems, fmt.Sprintf("unknown log level %q", c.Logging.Level))
	}

	if len(c.Report.Columns) == 0 {
		problems = append(problems, "no report columns configured")
	}
	for i, col := range c.Report.Columns {
		if strings.TrimSpace(col.Key) == "" {
			problems = append(problems, fmt.Sprintf("column %d has no key", i))
		}
	}

	if strings.ContainsAny(c.Report.Prefix, `/\`) {
		problems = append(problems, fmt.Sprintf("prefix %q must not contain a path separator", c.Report.Prefix))
	}

	sorts := false
	for _, s := range c.Report.Steps {
		switch s {
		case StepStripMarkup:
		case StepSortByDate:
			sorts = true
		default:
			problems = append(problems, fmt.Sprintf("unknown report step %q", s))
		}
	}
	if sorts && (c.Report.DateColumn < 0 || c.Report.DateColumn >= len(c.Report.Columns)) {
		problems = append(problems, fmt.Sprintf("date column %d is outside the %d report columns",
			c.Report.DateColumn, len(c.Report.Columns)))
	}

	if len(problems) > 0 {
		return apperror.NewInvalidConfig(strings.Join(problems, "; "))
	}
	return nil
}

// Pipeline builds the post-processing pipeline named by Steps.
func (c *Config) Pipeline() (reports.Pipeline, error) {
	p := make(reports.Pipeline, 0, len(c.Report.Steps))
	for _, s := range c.Report.Steps {
		switch s {
		case StepStripMarkup:
			p = append(p, reports.StripMarkup())
		case StepSortByDate:
			p = append(p, reports.SortByDate(c.Report.DateColumn))
		default:
			return nil, apperror.NewInvalidConfig(fmt.Sprintf("unknown report step %q", s))
		}
	}
	return p, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return n
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
