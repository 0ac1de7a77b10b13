package main

import (
	"fmt"

	"github.com/spf13/cobra"

	mcpserver "github.com/sfcmap/sfcmap/pkg/mcp"
	"github.com/sfcmap/sfcmap/pkg/mcplog"
	"github.com/sfcmap/sfcmap/pkg/report"
)

func newServeCommand() *cobra.Command {
	var (
		reportPath string
		logFile    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose a saved report over MCP on stdin/stdout",
		RunE: func(_ *cobra.Command, _ []string) error {
			proj, err := loadProjectConfig()
			if err != nil {
				return fmt.Errorf("read project config: %w", err)
			}
			var projReport, projLog string
			if proj != nil {
				projReport = proj.Report
				projLog = proj.McpLog
			}

			path := resolveString(reportPath, projReport, "sfcmap.json")
			qs, err := report.LoadAndQuery(path)
			if err != nil {
				return fmt.Errorf("load report: %w", err)
			}

			toolLog, err := mcplog.New(resolveString(logFile, projLog, ""))
			if err != nil {
				return err
			}
			if toolLog != nil {
				defer toolLog.Close()
			}

			return mcpserver.NewServer(qs, version, toolLog).ServeStdio()
		},
	}

	cmd.Flags().StringVar(&reportPath, "report", "", "report file produced by scan (default sfcmap.json)")
	cmd.Flags().StringVar(&logFile, "log-file", "", "JSONL tool-call log file (disabled when empty)")

	return cmd
}
