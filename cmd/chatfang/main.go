// Package main provides the entry point for the chatfang CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/chatfang/cmd/chatfang/commands"
	"github.com/Sumatoshi-tech/chatfang/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "chatfang",
		Short: "Chatfang - chat transcript analytics",
		Long: `Chatfang analyzes exported chat transcripts.

Commands:
  analyze   Run the analytics pipeline over a transcript file
  mcp       Start an MCP server exposing analysis tools`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewAnalyzeCommand())
	rootCmd.AddCommand(commands.NewMCPCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "chatfang %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
