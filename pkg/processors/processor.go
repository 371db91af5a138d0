// Package processors defines the analytics processor contract and the
// orchestration around it: a registry that computes a dependency-ordered
// execution sequence, and an orchestrator that parses a transcript and
// runs every registered processor over the shared data model.
package processors

import (
	"context"
	"time"

	"github.com/Sumatoshi-tech/chatfang/pkg/analytics"
)

// Payload is the processor-specific result body. Each processor publishes
// one concrete implementation so consumers know the shape behind a type
// key statically instead of runtime-casting.
type Payload interface {
	// Kind returns the processor type that produced the payload.
	Kind() string
}

// Result is the output of one processor run.
type Result struct {
	// Type is the processor type that produced this result.
	Type string `json:"type"`

	// Timestamp records when the result was produced.
	Timestamp time.Time `json:"timestamp"`

	// Data is the processor-specific payload.
	Data Payload `json:"data"`
}

// NewResult builds a Result for the given payload, stamped now.
func NewResult(payload Payload) Result {
	return Result{
		Type:      payload.Kind(),
		Timestamp: time.Now(),
		Data:      payload,
	}
}

// Processor is a named computation over the shared analytics data.
//
// Dependencies declare ordering only: a processor never receives another's
// output directly, it just runs after everything it names. Process must
// not mutate the data model.
type Processor interface {
	// Type returns the unique processor type name.
	Type() string

	// Dependencies returns the processor types that must run first.
	Dependencies() []string

	// Process computes the processor's result from the frozen data model.
	Process(ctx context.Context, data *analytics.Data) (Result, error)

	// Update recomputes the result for changed data. Implementations may
	// treat it as equivalent to Process; the entry point exists for
	// future incremental use.
	Update(ctx context.Context, data *analytics.Data) (Result, error)
}
