package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specvital/cy2pw/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".cy2pw.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_EmptyFile_UsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Empty(t, cfg.OutputDir)
	assert.Equal(t, config.DefaultWorkers, cfg.Workers)
	assert.Equal(t, config.DefaultTimeout, cfg.Timeout)
	assert.Empty(t, cfg.Exclude)
	assert.Equal(t, config.DefaultAddImport, cfg.AddImport)
	assert.Equal(t, config.DefaultRenameSpecs, cfg.RenameSpecs)
	assert.Equal(t, config.DefaultSharedCommands, cfg.SharedCommands)
	assert.Equal(t, config.DefaultMaxFileSize, cfg.MaxFileSize)
	assert.Equal(t, config.DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, config.DefaultFormat, cfg.Format)
}

func TestLoadConfig_ValidFile_Unmarshals(t *testing.T) {
	t.Parallel()

	content := `output_dir: ../e2e-playwright
workers: 8
timeout: 90s
exclude:
  - legacy
  - "**/fixtures"
patterns:
  - "e2e/**/*.cy.ts"
add_import: true
rename_specs: false
shared_commands: false
max_file_size: 2MiB
log_level: debug
format: json
`

	cfg, err := config.LoadConfig(writeConfig(t, content))
	require.NoError(t, err)

	assert.Equal(t, "../e2e-playwright", cfg.OutputDir)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
	assert.Equal(t, []string{"legacy", "**/fixtures"}, cfg.Exclude)
	assert.Equal(t, []string{"e2e/**/*.cy.ts"}, cfg.Patterns)
	assert.True(t, cfg.AddImport)
	assert.False(t, cfg.RenameSpecs)
	assert.False(t, cfg.SharedCommands)
	assert.Equal(t, "2MiB", cfg.MaxFileSize)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, config.FormatJSON, cfg.Format)
}

func TestLoadConfig_InvalidValue_ReturnsError(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(writeConfig(t, "format: xml\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidFormat)
}

func TestLoadConfig_MissingExplicitFile_ReturnsError(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_Environment_Overrides(t *testing.T) {
	t.Setenv("CY2PW_WORKERS", "6")
	t.Setenv("CY2PW_FORMAT", "yaml")

	cfg, err := config.LoadConfig(writeConfig(t, "workers: 2\n"))
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.Workers)
	assert.Equal(t, config.FormatYAML, cfg.Format)
}
