package processors_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/chatfang/pkg/analytics"
	"github.com/Sumatoshi-tech/chatfang/pkg/processors"
	"github.com/Sumatoshi-tech/chatfang/pkg/processors/basic"
	"github.com/Sumatoshi-tech/chatfang/pkg/processors/personality"
	"github.com/Sumatoshi-tech/chatfang/pkg/toposort"
)

const sampleTranscript = "01/01/24, 09:00 - Alice: Good morning!\n" +
	"01/01/24, 23:30 - Bob: still up 😀\n" +
	"02/01/24, 09:05 - Alice: back again"

func quietDeps() processors.OrchestratorDeps {
	return processors.OrchestratorDeps{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func newOrchestrator(t *testing.T, procs ...processors.Processor) *processors.Orchestrator {
	t.Helper()

	return processors.NewOrchestrator(
		newRegistry(t, procs...),
		analytics.NewBuilder(analytics.Options{}),
		quietDeps(),
	)
}

func TestRunProducesResultPerProcessor(t *testing.T) {
	t.Parallel()

	orchestrator := newOrchestrator(t,
		basic.NewProcessor(basic.Config{}),
		personality.NewProcessor(),
	)

	results, err := orchestrator.Run(context.Background(), sampleTranscript)
	require.NoError(t, err)
	require.Len(t, results, 2)

	stats, ok := results["basic"].Data.(basic.Stats)
	require.True(t, ok)
	assert.Equal(t, 3, stats.TotalMessages)

	profiles, ok := results["personality"].Data.(personality.Profiles)
	require.True(t, ok)
	assert.Len(t, profiles, 2)
}

func TestRunIsolatesProcessorFailure(t *testing.T) {
	t.Parallel()

	broken := &stubProcessor{name: "broken", err: errBoom}
	after := &stubProcessor{name: "after"}

	orchestrator := newOrchestrator(t,
		basic.NewProcessor(basic.Config{}),
		broken,
		after,
	)

	results, err := orchestrator.Run(context.Background(), sampleTranscript)
	require.NoError(t, err)

	// The failed processor is omitted, not reported as an error and not
	// represented by a placeholder entry.
	_, present := results["broken"]
	assert.False(t, present)

	assert.Contains(t, results, "basic")
	assert.Contains(t, results, "after")
	assert.Equal(t, 1, after.calls)
}

func TestRunCycleFailsBeforeProcessing(t *testing.T) {
	t.Parallel()

	first := &stubProcessor{name: "a", deps: []string{"b"}}
	second := &stubProcessor{name: "b", deps: []string{"a"}}

	orchestrator := newOrchestrator(t, first, second)

	results, err := orchestrator.Run(context.Background(), sampleTranscript)

	require.Error(t, err)
	assert.ErrorIs(t, err, toposort.ErrCycle)
	assert.Nil(t, results)
	assert.Zero(t, first.calls)
	assert.Zero(t, second.calls)
}

func TestRunEmptyTranscript(t *testing.T) {
	t.Parallel()

	orchestrator := newOrchestrator(t, basic.NewProcessor(basic.Config{}))

	results, err := orchestrator.Run(context.Background(), "")
	require.NoError(t, err)
	require.Contains(t, results, "basic")

	stats, ok := results["basic"].Data.(basic.Stats)
	require.True(t, ok)
	assert.Zero(t, stats.TotalMessages)
}

func TestRunResultTypeMatchesKey(t *testing.T) {
	t.Parallel()

	orchestrator := newOrchestrator(t,
		basic.NewProcessor(basic.Config{}),
		personality.NewProcessor(),
	)

	results, err := orchestrator.Run(context.Background(), sampleTranscript)
	require.NoError(t, err)

	for key, result := range results {
		assert.Equal(t, key, result.Type)
		assert.Equal(t, key, result.Data.Kind())
		assert.False(t, result.Timestamp.IsZero())
	}
}

func TestRunIndependentRunsShareNothing(t *testing.T) {
	t.Parallel()

	orchestrator := newOrchestrator(t, basic.NewProcessor(basic.Config{}))

	first, err := orchestrator.Run(context.Background(), sampleTranscript)
	require.NoError(t, err)

	second, err := orchestrator.Run(context.Background(), "01/01/24, 09:00 - Carol: solo")
	require.NoError(t, err)

	firstStats := first["basic"].Data.(basic.Stats)
	secondStats := second["basic"].Data.(basic.Stats)

	assert.Equal(t, 3, firstStats.TotalMessages)
	assert.Equal(t, 1, secondStats.TotalMessages)
	assert.Equal(t, []string{"Carol"}, secondStats.Participants)
}
