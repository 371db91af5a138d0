package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/chatfang/internal/config"
	"github.com/Sumatoshi-tech/chatfang/pkg/analytics"
	"github.com/Sumatoshi-tech/chatfang/pkg/observability"
	"github.com/Sumatoshi-tech/chatfang/pkg/persist"
	"github.com/Sumatoshi-tech/chatfang/pkg/processors"
	"github.com/Sumatoshi-tech/chatfang/pkg/processors/basic"
	"github.com/Sumatoshi-tech/chatfang/pkg/processors/personality"
	"github.com/Sumatoshi-tech/chatfang/pkg/report"
	"github.com/Sumatoshi-tech/chatfang/pkg/textutil"
	"github.com/Sumatoshi-tech/chatfang/pkg/version"
)

// errBinaryTranscript indicates the input is not a text transcript.
var errBinaryTranscript = errors.New("transcript is not text")

// stdinPath selects reading the transcript from stdin.
const stdinPath = "-"

// plotExtension is the file extension of the chart page.
const plotExtension = ".html"

// AnalyzeCommand holds the flags for the analyze command.
type AnalyzeCommand struct {
	configPath string
	format     string
	export     string
	threads    bool
	threadGap  string
	lexicon    bool
	compress   bool
	validate   bool
	plot       bool
	noColor    bool
}

// NewAnalyzeCommand creates and configures the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	cmd := &AnalyzeCommand{}

	cobraCmd := &cobra.Command{
		Use:   "analyze <transcript.txt|->",
		Short: "Analyze a chat transcript",
		Long: `Run the analytics pipeline over an exported chat transcript.

Reads the transcript from a file, or from stdin when the argument is "-".
Lines that do not match the export grammar are silently skipped.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return cmd.Run(cobraCmd.Context(), cobraCmd.OutOrStdout(), args[0])
		},
	}

	flags := cobraCmd.Flags()
	flags.StringVar(&cmd.configPath, "config", "", "Config file path (default: .chatfang.yaml in CWD or $HOME)")
	flags.StringVarP(&cmd.format, "format", "f", "", "Output format: text, json or yaml")
	flags.StringVarP(&cmd.export, "output", "o", "", "Export results to a file")
	flags.BoolVar(&cmd.threads, "threads", false, "Enable conversation thread segmentation")
	flags.StringVar(&cmd.threadGap, "thread-gap", "", "Idle gap that closes a thread (e.g. 30m)")
	flags.BoolVar(&cmd.lexicon, "lexicon", false, "Refine the mood signal with a VADER lexicon")
	flags.BoolVar(&cmd.compress, "compress", false, "Compress the exported file with LZ4")
	flags.BoolVar(&cmd.validate, "validate", false, "Validate exported JSON against the result schema")
	flags.BoolVar(&cmd.plot, "plot", false, "Write an HTML chart page next to the export")
	flags.BoolVar(&cmd.noColor, "no-color", false, "Disable colored output")

	return cobraCmd
}

// Run executes the analyze command.
func (c *AnalyzeCommand) Run(ctx context.Context, out io.Writer, transcriptPath string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	transcript, err := readTranscript(transcriptPath)
	if err != nil {
		return err
	}

	providers, err := initObservability(cfg)
	if err != nil {
		return err
	}

	defer func() {
		shutdownErr := providers.Shutdown(context.Background())
		if shutdownErr != nil {
			providers.Logger.Warn("observability shutdown failed", "error", shutdownErr)
		}
	}()

	providers.Logger.Debug("transcript loaded",
		"path", transcriptPath,
		"lines", textutil.CountLines([]byte(transcript)),
	)

	results, err := c.runPipeline(ctx, cfg, providers, transcript)
	if err != nil {
		return err
	}

	if err := c.renderResults(out, cfg, results); err != nil {
		return err
	}

	return c.exportResults(cfg, results)
}

// loadConfig loads the config file and overlays the explicitly set flags.
func (c *AnalyzeCommand) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(c.configPath)
	if err != nil {
		return nil, err
	}

	if c.format != "" {
		cfg.Output.Format = c.format
	}

	if c.export != "" {
		cfg.Output.Export = c.export
	}

	if c.threadGap != "" {
		cfg.Analysis.ThreadGap = c.threadGap
	}

	cfg.Analysis.Threads = cfg.Analysis.Threads || c.threads
	cfg.Analysis.LexiconSentiment = cfg.Analysis.LexiconSentiment || c.lexicon
	cfg.Output.Compress = cfg.Output.Compress || c.compress
	cfg.Output.Validate = cfg.Output.Validate || c.validate
	cfg.Output.Plot = cfg.Output.Plot || c.plot

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func readTranscript(path string) (string, error) {
	var raw []byte

	var err error

	if path == stdinPath {
		raw, err = io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
	} else {
		raw, err = os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read transcript: %w", err)
		}
	}

	if textutil.IsBinary(raw) {
		return "", fmt.Errorf("%w: %s", errBinaryTranscript, path)
	}

	return string(raw), nil
}

func initObservability(cfg *config.Config) (observability.Providers, error) {
	settings := cfg.ObservabilitySettings()
	settings.ServiceVersion = version.Version

	return observability.Init(settings)
}

func (c *AnalyzeCommand) runPipeline(
	ctx context.Context,
	cfg *config.Config,
	providers observability.Providers,
	transcript string,
) (map[string]processors.Result, error) {
	opts := analytics.Options{}

	if cfg.Analysis.Threads {
		gap, err := cfg.ParsedThreadGap()
		if err != nil {
			return nil, err
		}

		opts.ThreadGap = gap
	}

	registry := processors.NewRegistry()

	if err := registry.Register(basic.NewProcessor(basic.Config{LexiconSentiment: cfg.Analysis.LexiconSentiment})); err != nil {
		return nil, err
	}

	if err := registry.Register(personality.NewProcessor()); err != nil {
		return nil, err
	}

	red, err := observability.NewREDMetrics(providers.Meter)
	if err != nil {
		return nil, err
	}

	orchestrator := processors.NewOrchestrator(registry, analytics.NewBuilder(opts), processors.OrchestratorDeps{
		Logger:  providers.Logger,
		Metrics: red,
		Tracer:  providers.Tracer,
	})

	return orchestrator.Run(ctx, transcript)
}

func (c *AnalyzeCommand) renderResults(out io.Writer, cfg *config.Config, results map[string]processors.Result) error {
	switch cfg.Output.Format {
	case config.FormatJSON:
		return persist.NewJSONCodec().Encode(out, results)
	case config.FormatYAML:
		return persist.NewYAMLCodec().Encode(out, results)
	default:
		return report.NewRenderer(!c.noColor && !color.NoColor).Render(out, results)
	}
}

func (c *AnalyzeCommand) exportResults(cfg *config.Config, results map[string]processors.Result) error {
	if cfg.Output.Export == "" {
		return nil
	}

	var codec persist.Codec = persist.NewJSONCodec()
	if cfg.Output.Format == config.FormatYAML {
		codec = persist.NewYAMLCodec()
	}

	writer := persist.NewWriter(codec, cfg.Output.Compress)

	if err := writer.Save(cfg.Output.Export, results); err != nil {
		return err
	}

	if cfg.Output.Validate && cfg.Output.Format != config.FormatYAML {
		if err := validateExport(results); err != nil {
			return err
		}
	}

	if cfg.Output.Plot {
		return writePlotPage(cfg.Output.Export, results)
	}

	return nil
}

func validateExport(results map[string]processors.Result) error {
	var encoded strings.Builder
	if err := persist.NewJSONCodec().Encode(&encoded, results); err != nil {
		return err
	}

	return persist.ValidateResult([]byte(encoded.String()))
}

func writePlotPage(exportPath string, results map[string]processors.Result) error {
	result, ok := results[basic.Type]
	if !ok {
		return nil
	}

	stats, ok := result.Data.(basic.Stats)
	if !ok {
		return nil
	}

	path := plotPath(exportPath)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart page: %w", err)
	}
	defer file.Close()

	return report.WritePlots(file, stats)
}

// plotPath derives the chart page path from the export path by swapping
// the extension for ".html".
func plotPath(exportPath string) string {
	trimmed := strings.TrimSuffix(exportPath, ".lz4")
	if idx := strings.LastIndex(trimmed, "."); idx > 0 {
		trimmed = trimmed[:idx]
	}

	return trimmed + plotExtension
}
