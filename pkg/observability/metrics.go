package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricRunsTotal      = "chatfang.processor.runs.total"
	metricRunDuration    = "chatfang.processor.run.duration.seconds"
	metricErrorsTotal    = "chatfang.processor.errors.total"
	metricInflightRuns   = "chatfang.processor.inflight.runs"
	attrProcessor        = "processor"
	attrStatus           = "status"
	metricsStatusFailure = "error"
)

// durationBucketBoundaries covers 1ms to 60s; processor runs are in-memory
// reductions, well under a minute even on very large transcripts.
var durationBucketBoundaries = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60}

// REDMetrics holds the OTel instruments for Rate, Error, Duration metrics
// over processor runs.
type REDMetrics struct {
	runsTotal    metric.Int64Counter
	runDuration  metric.Float64Histogram
	errorsTotal  metric.Int64Counter
	inflightRuns metric.Int64UpDownCounter
}

// NewREDMetrics creates RED metric instruments from the given meter.
func NewREDMetrics(mt metric.Meter) (*REDMetrics, error) {
	runsTotal, err := mt.Int64Counter(metricRunsTotal,
		metric.WithDescription("Total number of processor runs"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricRunsTotal, err)
	}

	runDuration, err := mt.Float64Histogram(metricRunDuration,
		metric.WithDescription("Processor run duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricRunDuration, err)
	}

	errorsTotal, err := mt.Int64Counter(metricErrorsTotal,
		metric.WithDescription("Total number of failed processor runs"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricErrorsTotal, err)
	}

	inflight, err := mt.Int64UpDownCounter(metricInflightRuns,
		metric.WithDescription("Number of in-flight processor runs"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricInflightRuns, err)
	}

	return &REDMetrics{
		runsTotal:    runsTotal,
		runDuration:  runDuration,
		errorsTotal:  errorsTotal,
		inflightRuns: inflight,
	}, nil
}

// RecordRun records a completed processor run with its type, status and
// duration.
func (rm *REDMetrics) RecordRun(ctx context.Context, processor, status string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String(attrProcessor, processor),
		attribute.String(attrStatus, status),
	)

	rm.runsTotal.Add(ctx, 1, attrs)
	rm.runDuration.Record(ctx, duration.Seconds(), attrs)

	if status == metricsStatusFailure {
		rm.errorsTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String(attrProcessor, processor),
		))
	}
}

// TrackInflight increments the in-flight gauge and returns a function to
// decrement it.
func (rm *REDMetrics) TrackInflight(ctx context.Context, processor string) func() {
	attrs := metric.WithAttributes(attribute.String(attrProcessor, processor))
	rm.inflightRuns.Add(ctx, 1, attrs)

	return func() {
		rm.inflightRuns.Add(ctx, -1, attrs)
	}
}
