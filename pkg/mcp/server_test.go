package mcp_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sumatoshi-tech/chatfang/pkg/mcp"
)

const sampleTranscript = "01/01/24, 09:00 - Alice: Good morning!\n" +
	"01/01/24, 23:30 - Bob: still up 😀\n" +
	"02/01/24, 09:05 - Alice: back again"

const sessionTimeout = 10 * time.Second

// startSession wires a server and client over in-memory transports.
func startSession(t *testing.T) (*mcpsdk.ClientSession, context.Context) {
	t.Helper()

	srv := mcp.NewServer(mcp.ServerDeps{})

	clientTransport, serverTransport := mcpsdk.NewInMemoryTransports()

	ctx, cancel := context.WithTimeout(context.Background(), sessionTimeout)

	serverDone := make(chan error, 1)

	go func() {
		serverDone <- srv.RunWithTransport(ctx, serverTransport)
	}()

	client := mcpsdk.NewClient(&mcpsdk.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = session.Close()

		cancel()
		<-serverDone
	})

	return session, ctx
}

func TestServerListTools(t *testing.T) {
	t.Parallel()

	session, ctx := startSession(t)

	toolsResult, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	require.NotNil(t, toolsResult)

	toolNames := make([]string, 0, len(toolsResult.Tools))
	for _, tool := range toolsResult.Tools {
		toolNames = append(toolNames, tool.Name)
	}

	assert.Contains(t, toolNames, "chatfang_analyze")
	assert.Contains(t, toolNames, "chatfang_parse")
	assert.Len(t, toolNames, 2)

	for _, tool := range toolsResult.Tools {
		assert.NotNil(t, tool.InputSchema, "tool %s missing input schema", tool.Name)
	}
}

func TestServerCallAnalyze(t *testing.T) {
	t.Parallel()

	session, ctx := startSession(t)

	result, err := session.CallTool(ctx, &mcpsdk.CallToolParams{
		Name: mcp.ToolNameAnalyze,
		Arguments: map[string]any{
			"transcript": sampleTranscript,
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsError)

	require.NotEmpty(t, result.Content)

	text, ok := result.Content[0].(*mcpsdk.TextContent)
	require.True(t, ok)

	var payload map[string]json.RawMessage

	require.NoError(t, json.Unmarshal([]byte(text.Text), &payload))
	assert.Contains(t, payload, "basic")
	assert.Contains(t, payload, "personality")
}

func TestServerCallAnalyzeEmptyTranscript(t *testing.T) {
	t.Parallel()

	session, ctx := startSession(t)

	result, err := session.CallTool(ctx, &mcpsdk.CallToolParams{
		Name: mcp.ToolNameAnalyze,
		Arguments: map[string]any{
			"transcript": "",
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestServerCallAnalyzeInvalidThreadGap(t *testing.T) {
	t.Parallel()

	session, ctx := startSession(t)

	result, err := session.CallTool(ctx, &mcpsdk.CallToolParams{
		Name: mcp.ToolNameAnalyze,
		Arguments: map[string]any{
			"transcript": sampleTranscript,
			"threads":    true,
			"thread_gap": "whenever",
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestServerCallParse(t *testing.T) {
	t.Parallel()

	session, ctx := startSession(t)

	result, err := session.CallTool(ctx, &mcpsdk.CallToolParams{
		Name: mcp.ToolNameParse,
		Arguments: map[string]any{
			"transcript": sampleTranscript,
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsError)

	require.NotEmpty(t, result.Content)

	text, ok := result.Content[0].(*mcpsdk.TextContent)
	require.True(t, ok)

	var payload struct {
		Messages     []json.RawMessage `json:"messages"`
		Participants []string          `json:"participants"`
	}

	require.NoError(t, json.Unmarshal([]byte(text.Text), &payload))
	assert.Len(t, payload.Messages, 3)
	assert.Equal(t, []string{"Alice", "Bob"}, payload.Participants)
}

func TestListToolNames(t *testing.T) {
	t.Parallel()

	srv := mcp.NewServer(mcp.ServerDeps{})

	assert.Equal(t, []string{"chatfang_analyze", "chatfang_parse"}, srv.ListToolNames())
}
