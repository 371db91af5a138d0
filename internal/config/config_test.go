package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/chatfang/internal/config"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	assert.False(t, cfg.Analysis.Threads)
	assert.Equal(t, "30m", cfg.Analysis.ThreadGap)
	assert.False(t, cfg.Analysis.LexiconSentiment)

	assert.Equal(t, config.FormatText, cfg.Output.Format)
	assert.Empty(t, cfg.Output.Export)

	assert.Equal(t, "chatfang", cfg.Observability.ServiceName)
	assert.Equal(t, "info", cfg.Observability.LogLevel)
	assert.Equal(t, 5, cfg.Observability.ShutdownTimeoutSec)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chatfang.yaml")

	content := []byte(`
analysis:
  threads: true
  thread_gap: 15m
output:
  format: json
  export: out.json
  compress: true
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.Analysis.Threads)
	assert.Equal(t, "15m", cfg.Analysis.ThreadGap)
	assert.Equal(t, config.FormatJSON, cfg.Output.Format)
	assert.Equal(t, "out.json", cfg.Output.Export)
	assert.True(t, cfg.Output.Compress)

	// Untouched sections keep defaults.
	assert.Equal(t, "chatfang", cfg.Observability.ServiceName)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("CHATFANG_OUTPUT_FORMAT", "yaml")

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, config.FormatYAML, cfg.Output.Format)
}

func TestLoadConfigInvalidFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chatfang.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  format: xml\n"), 0o600))

	_, err := config.LoadConfig(path)

	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidOutputFormat)
}

func TestLoadConfigInvalidThreadGap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chatfang.yaml")
	require.NoError(t, os.WriteFile(path, []byte("analysis:\n  thread_gap: sometimes\n"), 0o600))

	_, err := config.LoadConfig(path)

	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidThreadGap)
}

func TestParsedThreadGap(t *testing.T) {
	t.Parallel()

	cfg := config.Config{}
	cfg.Analysis.ThreadGap = "45m"

	gap, err := cfg.ParsedThreadGap()
	require.NoError(t, err)
	assert.Equal(t, 45*time.Minute, gap)

	cfg.Analysis.ThreadGap = "-5m"

	_, err = cfg.ParsedThreadGap()
	assert.ErrorIs(t, err, config.ErrInvalidThreadGap)
}

func TestObservabilitySettings(t *testing.T) {
	t.Parallel()

	cfg := config.Config{}
	cfg.Observability.ServiceName = "chatfang"
	cfg.Observability.OTLPEndpoint = "localhost:4317"
	cfg.Observability.ShutdownTimeoutSec = 3

	settings := cfg.ObservabilitySettings()

	assert.Equal(t, "chatfang", settings.ServiceName)
	assert.Equal(t, "localhost:4317", settings.OTLPEndpoint)
	assert.Equal(t, 3, settings.ShutdownTimeoutSec)
}
