package processors

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/chatfang/pkg/analytics"
	"github.com/Sumatoshi-tech/chatfang/pkg/observability"
)

// statusOK and statusError label run outcomes on RED metrics.
const (
	statusOK    = "ok"
	statusError = "error"
)

// runSpanName is the span wrapping one full pipeline run.
const runSpanName = "pipeline.run"

// OrchestratorDeps holds injectable dependencies for an Orchestrator.
// Zero-value fields use production defaults.
type OrchestratorDeps struct {
	// Logger is an optional structured logger. Nil uses slog default.
	Logger *slog.Logger

	// Metrics is an optional RED metrics recorder. Nil disables metrics.
	Metrics *observability.REDMetrics

	// Tracer is an optional OTel tracer for per-run spans. Nil disables
	// tracing.
	Tracer trace.Tracer
}

// Orchestrator owns a full analysis run: it folds the raw transcript into
// a fresh data model, then executes every registered processor in
// dependency order, collecting one result per successful processor.
type Orchestrator struct {
	registry *Registry
	builder  *analytics.Builder
	logger   *slog.Logger
	metrics  *observability.REDMetrics
	tracer   trace.Tracer
}

// NewOrchestrator creates an Orchestrator over the given registry and
// builder.
func NewOrchestrator(registry *Registry, builder *analytics.Builder, deps OrchestratorDeps) *Orchestrator {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Orchestrator{
		registry: registry,
		builder:  builder,
		logger:   logger,
		metrics:  deps.Metrics,
		tracer:   deps.Tracer,
	}
}

// Run parses the transcript and executes all processors, returning one
// result per successfully completed processor type.
//
// A processor error is terminal for that processor only: it is logged,
// its entry is omitted from the result map, and every remaining processor
// still runs. A circular dependency among registered processors fails the
// whole run before any processor executes.
func (o *Orchestrator) Run(ctx context.Context, transcript string) (map[string]Result, error) {
	order, err := o.registry.ExecutionOrder()
	if err != nil {
		return nil, err
	}

	if o.tracer != nil {
		var span trace.Span

		ctx, span = o.tracer.Start(ctx, runSpanName,
			trace.WithAttributes(attribute.Int("pipeline.processors", len(order))),
		)
		defer span.End()
	}

	data := o.builder.Build(transcript)

	o.logger.InfoContext(ctx, "transcript parsed",
		slog.Int("messages", data.TotalMessages()),
		slog.Int("participants", len(data.ParticipantOrder)),
	)

	results := make(map[string]Result, len(order))

	for _, name := range order {
		processor, ok := o.registry.Get(name)
		if !ok {
			continue
		}

		result, runErr := o.runOne(ctx, name, processor, data)
		if runErr != nil {
			o.logger.ErrorContext(ctx, "processor failed",
				slog.String("processor", name),
				slog.Any("error", runErr),
			)

			continue
		}

		results[name] = result
	}

	return results, nil
}

// runOne executes a single processor with metrics and logging around it.
func (o *Orchestrator) runOne(ctx context.Context, name string, processor Processor, data *analytics.Data) (Result, error) {
	start := time.Now()

	if o.metrics != nil {
		decInflight := o.metrics.TrackInflight(ctx, name)
		defer decInflight()
	}

	result, err := processor.Process(ctx, data)

	elapsed := time.Since(start)

	if o.metrics != nil {
		status := statusOK
		if err != nil {
			status = statusError
		}

		o.metrics.RecordRun(ctx, name, status, elapsed)
	}

	if err != nil {
		return Result{}, err
	}

	o.logger.DebugContext(ctx, "processor completed",
		slog.String("processor", name),
		slog.Duration("elapsed", elapsed),
	)

	return result, nil
}
