package report_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/chatfang/pkg/analytics"
	"github.com/Sumatoshi-tech/chatfang/pkg/processors"
	"github.com/Sumatoshi-tech/chatfang/pkg/processors/basic"
	"github.com/Sumatoshi-tech/chatfang/pkg/processors/personality"
	"github.com/Sumatoshi-tech/chatfang/pkg/report"
)

const sampleTranscript = "01/01/24, 09:00 - Alice: Good morning!\n" +
	"01/01/24, 23:30 - Bob: still up 😀\n" +
	"02/01/24, 09:05 - Alice: back again"

func sampleResults(t *testing.T) map[string]processors.Result {
	t.Helper()

	registry := processors.NewRegistry()
	require.NoError(t, registry.Register(basic.NewProcessor(basic.Config{})))
	require.NoError(t, registry.Register(personality.NewProcessor()))

	orchestrator := processors.NewOrchestrator(
		registry,
		analytics.NewBuilder(analytics.Options{}),
		processors.OrchestratorDeps{},
	)

	results, err := orchestrator.Run(context.Background(), sampleTranscript)
	require.NoError(t, err)

	return results
}

func TestRenderFullReport(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, report.NewRenderer(false).Render(&buf, sampleResults(t)))

	out := buf.String()

	assert.Contains(t, out, "Chat overview")
	assert.Contains(t, out, "Participants")
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "Bob")
	assert.Contains(t, out, "Personality profiles")
	assert.Contains(t, out, "Achievements")
	assert.Contains(t, out, "Most active day")
}

func TestRenderEmptyResults(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, report.NewRenderer(false).Render(&buf, map[string]processors.Result{}))

	assert.Contains(t, buf.String(), "No analysis results")
}

func TestRenderToleratesMissingPersonality(t *testing.T) {
	t.Parallel()

	results := sampleResults(t)
	delete(results, personality.Type)

	var buf bytes.Buffer

	require.NoError(t, report.NewRenderer(false).Render(&buf, results))

	out := buf.String()

	assert.Contains(t, out, "Chat overview")
	assert.NotContains(t, out, "Personality profiles")
}

func TestWritePlots(t *testing.T) {
	t.Parallel()

	results := sampleResults(t)

	stats, ok := results[basic.Type].Data.(basic.Stats)
	require.True(t, ok)

	var buf bytes.Buffer

	require.NoError(t, report.WritePlots(&buf, stats))

	out := buf.String()

	assert.True(t, strings.Contains(out, "echarts"))
	assert.Contains(t, out, "Messages by hour")
	assert.Contains(t, out, "Messages by participant")
	assert.Contains(t, out, "Activity heatmap")
}

func TestWritePlotsEmptyStats(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, report.WritePlots(&buf, basic.Stats{}))
	assert.NotEmpty(t, buf.String())
}
