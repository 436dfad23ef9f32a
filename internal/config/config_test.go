package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catreport/internal/core/apperror"
	"catreport/internal/domain/reports"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catreport.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"LOG_LEVEL", "APP_ENV", "CATREPORT_OUT_DIR", "CATREPORT_PREFIX", "CATREPORT_DATE_COLUMN", "CATREPORT_STEPS"} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "mmstore_report", cfg.Report.Prefix)
	assert.Equal(t, 2, cfg.Report.DateColumn)
	assert.Equal(t, reports.DefaultColumns(), cfg.Report.Columns)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
logging:
  level: debug
report:
  output_dir: /tmp/reports
  prefix: weekly
  date_column: 0
  steps: [sort-by-date]
  columns:
    - display: Expiry
      key: metadata_Expiry Date
    - display: Code
      key: Code__STR
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/tmp/reports", cfg.Report.OutputDir)
	assert.Equal(t, "weekly", cfg.Report.Prefix)
	assert.Equal(t, 0, cfg.Report.DateColumn)
	assert.Equal(t, []string{StepSortByDate}, cfg.Report.Steps)
	assert.Equal(t, []reports.Column{
		{Display: "Expiry", Key: "metadata_Expiry Date"},
		{Display: "Code", Key: "Code__STR"},
	}, cfg.Report.Columns)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "report: [unclosed"))
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidConfig))
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("APP_ENV", "development")
	t.Setenv("CATREPORT_OUT_DIR", "out")
	t.Setenv("CATREPORT_PREFIX", "nightly")
	t.Setenv("CATREPORT_DATE_COLUMN", "4")
	t.Setenv("CATREPORT_STEPS", "strip-markup, ")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, "out", cfg.Report.OutputDir)
	assert.Equal(t, "nightly", cfg.Report.Prefix)
	assert.Equal(t, 4, cfg.Report.DateColumn)
	assert.Equal(t, []string{StepStripMarkup}, cfg.Report.Steps)
}

func TestLoad_InvalidEnvIntIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("CATREPORT_DATE_COLUMN", "third")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, reports.DefaultDateColumn, cfg.Report.DateColumn)
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Level = "chatty"
	cfg.Report.Prefix = "a/b"
	cfg.Report.DateColumn = 99
	cfg.Report.Steps = append(cfg.Report.Steps, "uppercase")
	cfg.Report.Columns = append(cfg.Report.Columns, reports.Column{Display: "Blank"})

	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidConfig))

	msg := err.Error()
	assert.Contains(t, msg, `unknown log level "chatty"`)
	assert.Contains(t, msg, "must not contain a path separator")
	assert.Contains(t, msg, "date column 99")
	assert.Contains(t, msg, `unknown report step "uppercase"`)
	assert.Contains(t, msg, "column 14 has no key")
}

func TestValidate_DateColumnIgnoredWithoutSort(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Report.Steps = []string{StepStripMarkup}
	cfg.Report.DateColumn = 99

	assert.NoError(t, cfg.Validate())
}

func TestPipeline(t *testing.T) {
	cfg := DefaultConfig()

	p, err := cfg.Pipeline()
	require.NoError(t, err)
	assert.Equal(t, []string{"strip-markup", "sort-by-date"}, p.Names())

	cfg.Report.Steps = []string{"nope"}
	_, err = cfg.Pipeline()
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidConfig))
}
