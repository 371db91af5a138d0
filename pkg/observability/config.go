// Package observability wires structured logging, OpenTelemetry tracing
// and metrics for the chatfang pipeline. With no OTLP endpoint configured
// every provider is a no-op with zero export overhead.
package observability

// Log output formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// defaultShutdownTimeoutSec bounds the telemetry flush on exit.
const defaultShutdownTimeoutSec = 5

// Config controls provider initialization.
type Config struct {
	// ServiceName identifies the service on telemetry resources.
	ServiceName string

	// ServiceVersion is attached to telemetry resources when set.
	ServiceVersion string

	// Environment labels telemetry (e.g. "dev", "prod") when set.
	Environment string

	// OTLPEndpoint is the OTLP gRPC collector endpoint. Empty disables
	// export entirely.
	OTLPEndpoint string

	// OTLPInsecure disables TLS on the exporter connection.
	OTLPInsecure bool

	// LogLevel is the minimum slog level ("debug", "info", "warn",
	// "error"). Empty means info.
	LogLevel string

	// LogFormat selects the slog handler: "text" (default) or "json".
	LogFormat string

	// ShutdownTimeoutSec bounds the telemetry flush on shutdown.
	ShutdownTimeoutSec int
}
