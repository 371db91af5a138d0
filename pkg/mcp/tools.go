package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sumatoshi-tech/chatfang/pkg/analytics"
	"github.com/Sumatoshi-tech/chatfang/pkg/chat"
	"github.com/Sumatoshi-tech/chatfang/pkg/processors"
	"github.com/Sumatoshi-tech/chatfang/pkg/processors/basic"
	"github.com/Sumatoshi-tech/chatfang/pkg/processors/personality"
	"github.com/Sumatoshi-tech/chatfang/pkg/textutil"
)

// Tool name constants.
const (
	ToolNameAnalyze = "chatfang_analyze"
	ToolNameParse   = "chatfang_parse"
)

// Tool descriptions.
const (
	analyzeToolDescription = "Run the full analytics pipeline over a WhatsApp chat transcript " +
		"and return per-processor results: aggregate statistics and per-participant personality profiles."
	parseToolDescription = "Parse a WhatsApp chat transcript and return the structured messages " +
		"without running any analysis."
)

// MaxTranscriptBytes is the maximum allowed size for inline transcript input (8 MB).
const MaxTranscriptBytes = 8 << 20

// Sentinel errors for tool input validation.
var (
	// ErrEmptyTranscript indicates the transcript parameter is empty.
	ErrEmptyTranscript = errors.New("transcript parameter is required and must not be empty")
	// ErrTranscriptTooLarge indicates the transcript exceeds the size limit.
	ErrTranscriptTooLarge = errors.New("transcript exceeds maximum size")
	// ErrInvalidThreadGap indicates the thread_gap parameter does not parse.
	ErrInvalidThreadGap = errors.New("thread_gap must be a positive duration such as 30m")
	// ErrBinaryTranscript indicates the transcript is not plain text.
	ErrBinaryTranscript = errors.New("transcript must be plain text")
)

// AnalyzeInput is the input schema for the chatfang_analyze tool.
type AnalyzeInput struct {
	Transcript       string `json:"transcript"                  jsonschema:"raw exported chat text, one message per line"`
	Threads          bool   `json:"threads,omitempty"           jsonschema:"enable conversation thread segmentation"`
	ThreadGap        string `json:"thread_gap,omitempty"        jsonschema:"idle gap that closes a thread (e.g. 30m)"`
	LexiconSentiment bool   `json:"lexicon_sentiment,omitempty" jsonschema:"refine the mood signal with a VADER lexicon"`
}

// ParseInput is the input schema for the chatfang_parse tool.
type ParseInput struct {
	Transcript string `json:"transcript" jsonschema:"raw exported chat text, one message per line"`
}

// ToolOutput is a generic wrapper for tool results.
type ToolOutput struct {
	Data any `json:"data"`
}

// errorResult builds a CallToolResult with isError set.
func errorResult(err error) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: err.Error()},
		},
		IsError: true,
	}, ToolOutput{}, nil
}

// jsonResult builds a CallToolResult with JSON-encoded content.
func jsonResult(value any) (*mcpsdk.CallToolResult, ToolOutput, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: string(data)},
		},
	}, ToolOutput{Data: value}, nil
}

// validateTranscript checks common transcript input constraints.
func validateTranscript(transcript string) error {
	if transcript == "" {
		return ErrEmptyTranscript
	}

	if len(transcript) > MaxTranscriptBytes {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrTranscriptTooLarge, len(transcript), MaxTranscriptBytes)
	}

	if textutil.IsBinary([]byte(transcript)) {
		return ErrBinaryTranscript
	}

	return nil
}

func handleAnalyze(ctx context.Context, _ *mcpsdk.CallToolRequest, input AnalyzeInput) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if err := validateTranscript(input.Transcript); err != nil {
		return errorResult(err)
	}

	opts := analytics.Options{}

	if input.Threads {
		opts.ThreadGap = analytics.DefaultThreadGap

		if input.ThreadGap != "" {
			gap, err := time.ParseDuration(input.ThreadGap)
			if err != nil || gap <= 0 {
				return errorResult(ErrInvalidThreadGap)
			}

			opts.ThreadGap = gap
		}
	}

	registry := processors.NewRegistry()

	if err := registry.Register(basic.NewProcessor(basic.Config{LexiconSentiment: input.LexiconSentiment})); err != nil {
		return errorResult(err)
	}

	if err := registry.Register(personality.NewProcessor()); err != nil {
		return errorResult(err)
	}

	orchestrator := processors.NewOrchestrator(registry, analytics.NewBuilder(opts), processors.OrchestratorDeps{})

	results, err := orchestrator.Run(ctx, input.Transcript)
	if err != nil {
		return errorResult(err)
	}

	return jsonResult(results)
}

func handleParse(_ context.Context, _ *mcpsdk.CallToolRequest, input ParseInput) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if err := validateTranscript(input.Transcript); err != nil {
		return errorResult(err)
	}

	data := analytics.NewBuilder(analytics.Options{}).Build(input.Transcript)

	type parsed struct {
		Messages     []chat.Message `json:"messages"`
		Participants []string       `json:"participants"`
	}

	return jsonResult(parsed{
		Messages:     data.Messages,
		Participants: data.ParticipantOrder,
	})
}
