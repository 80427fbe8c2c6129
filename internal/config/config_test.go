package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ypbank.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.LogFile)
	assert.Equal(t, HeaderCheckPositional, cfg.CSV.HeaderCheck)
	assert.False(t, cfg.StrictCSVHeader())
	assert.Equal(t, "First", cfg.Report.SheetFirst)
	assert.Equal(t, "Second", cfg.Report.SheetSecond)
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")

	cfg, err := Load(path, false)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = Load(path, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
log_format: json
log_file: /tmp/ypbank.log
csv:
  header_check: strict
report:
  sheet_first: Left
`)

	cfg, err := Load(path, true)

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "/tmp/ypbank.log", cfg.LogFile)
	assert.True(t, cfg.StrictCSVHeader())
	assert.Equal(t, "Left", cfg.Report.SheetFirst)
	assert.Equal(t, "Second", cfg.Report.SheetSecond)
}

func TestLoadInvalid(t *testing.T) {
	cases := map[string]string{
		"log level":    "log_level: loud\n",
		"log format":   "log_format: xml\n",
		"header check": "csv:\n  header_check: fuzzy\n",
		"sheet clash":  "report:\n  sheet_first: Same\n  sheet_second: Same\n",
		"bad yaml":     "log_level: [\n",
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content), true)
			require.Error(t, err)
		})
	}
}
