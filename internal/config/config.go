// Package config loads chatfang configuration from file, environment
// variables and defaults.
package config

import (
	"errors"
	"time"

	"github.com/Sumatoshi-tech/chatfang/pkg/observability"
)

// Config is the top-level configuration struct for chatfang.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Analysis      AnalysisConfig      `mapstructure:"analysis"`
	Output        OutputConfig        `mapstructure:"output"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// AnalysisConfig holds transcript analysis knobs.
type AnalysisConfig struct {
	// Threads enables conversation thread segmentation.
	Threads bool `mapstructure:"threads"`

	// ThreadGap is the idle gap that closes a thread, e.g. "30m".
	ThreadGap string `mapstructure:"thread_gap"`

	// LexiconSentiment enables VADER refinement of the mood signal.
	LexiconSentiment bool `mapstructure:"lexicon_sentiment"`
}

// OutputConfig holds result rendering and export settings.
type OutputConfig struct {
	// Format is the terminal output format: text, json or yaml.
	Format string `mapstructure:"format"`

	// Export is an optional file path for the serialized result.
	Export string `mapstructure:"export"`

	// Compress writes exported results lz4-compressed.
	Compress bool `mapstructure:"compress"`

	// Validate checks exported JSON against the result schema.
	Validate bool `mapstructure:"validate"`

	// Plot writes an HTML chart page next to the export.
	Plot bool `mapstructure:"plot"`
}

// ObservabilityConfig holds logging and telemetry settings.
type ObservabilityConfig struct {
	ServiceName        string `mapstructure:"service_name"`
	Environment        string `mapstructure:"environment"`
	OTLPEndpoint       string `mapstructure:"otlp_endpoint"`
	OTLPInsecure       bool   `mapstructure:"otlp_insecure"`
	LogLevel           string `mapstructure:"log_level"`
	LogFormat          string `mapstructure:"log_format"`
	ShutdownTimeoutSec int    `mapstructure:"shutdown_timeout_sec"`
}

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Sentinel errors for configuration validation.
var (
	// ErrInvalidOutputFormat indicates an unknown output format.
	ErrInvalidOutputFormat = errors.New("output.format must be text, json or yaml")
	// ErrInvalidThreadGap indicates the thread gap does not parse or is
	// not positive.
	ErrInvalidThreadGap = errors.New("analysis.thread_gap must be a positive duration")
	// ErrInvalidLogFormat indicates an unknown log format.
	ErrInvalidLogFormat = errors.New("observability.log_format must be text or json")
	// ErrInvalidShutdownTimeout indicates the shutdown timeout is not positive.
	ErrInvalidShutdownTimeout = errors.New("observability.shutdown_timeout_sec must be positive")
)

// Validate checks Config invariants and returns the first error found.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return ErrInvalidOutputFormat
	}

	if _, err := c.ParsedThreadGap(); err != nil {
		return err
	}

	switch c.Observability.LogFormat {
	case observability.LogFormatText, observability.LogFormatJSON:
	default:
		return ErrInvalidLogFormat
	}

	if c.Observability.ShutdownTimeoutSec <= 0 {
		return ErrInvalidShutdownTimeout
	}

	return nil
}

// ParsedThreadGap returns the thread gap as a duration.
func (c *Config) ParsedThreadGap() (time.Duration, error) {
	gap, err := time.ParseDuration(c.Analysis.ThreadGap)
	if err != nil || gap <= 0 {
		return 0, ErrInvalidThreadGap
	}

	return gap, nil
}

// ObservabilitySettings converts the config section into the runtime
// observability configuration.
func (c *Config) ObservabilitySettings() observability.Config {
	return observability.Config{
		ServiceName:        c.Observability.ServiceName,
		Environment:        c.Observability.Environment,
		OTLPEndpoint:       c.Observability.OTLPEndpoint,
		OTLPInsecure:       c.Observability.OTLPInsecure,
		LogLevel:           c.Observability.LogLevel,
		LogFormat:          c.Observability.LogFormat,
		ShutdownTimeoutSec: c.Observability.ShutdownTimeoutSec,
	}
}
