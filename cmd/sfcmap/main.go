// Package main provides the entry point for the sfcmap CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sfcmap/sfcmap/pkg/util"
)

const version = "0.1.0-dev"

var (
	logLevel  string
	logFormat string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sfcmap",
		Short: "Component inventory analyzer for Vue SFC and TS/JS codebases",
		Long: `sfcmap scans a front-end codebase and produces a per-file inventory:
imports, exports, template tag usage, style selectors, and typed
component props.

Commands:
  scan      Analyze a directory tree and write the inventory report
  watch     Keep a report in sync as files change
  serve     Expose a saved report over MCP for coding agents`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text or json")

	rootCmd.AddCommand(newScanCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "sfcmap %s\n", version)
		},
	}
}

// newLogger builds the process logger from the persistent flags.
// Diagnostics always go to stderr so stdout stays parseable.
func newLogger() *slog.Logger {
	cfg := util.DefaultLoggerConfig()
	cfg.Level = util.LogLevel(logLevel)
	cfg.Format = util.LogFormat(logFormat)
	return util.NewLogger(cfg)
}
