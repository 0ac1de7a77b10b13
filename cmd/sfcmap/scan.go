package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sfcmap/sfcmap/pkg/report"
	"github.com/sfcmap/sfcmap/pkg/scanner"
)

type scanOptions struct {
	out     string
	format  string
	include []string
	exclude []string
	workers int
}

func newScanCommand() *cobra.Command {
	opts := &scanOptions{}

	cmd := &cobra.Command{
		Use:   "scan [dir]",
		Short: "Analyze a directory tree and write the inventory report",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			return runScan(root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: json or yaml (default json)")
	cmd.Flags().StringSliceVar(&opts.include, "include", nil, "include glob patterns (doublestar)")
	cmd.Flags().StringSliceVar(&opts.exclude, "exclude", nil, "exclude glob patterns (doublestar)")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "analysis worker count (0 = auto)")

	return cmd
}

// buildScanConfig merges flags over the project config over defaults.
func buildScanConfig(opts *scanOptions, proj *ProjectConfig) scanner.ScanConfig {
	cfg := scanner.DefaultScanConfig()
	if proj != nil {
		if len(proj.Include) > 0 {
			cfg.Include = proj.Include
		}
		if len(proj.Exclude) > 0 {
			cfg.Exclude = proj.Exclude
		}
		cfg.Workers = proj.Workers
	}
	if len(opts.include) > 0 {
		cfg.Include = opts.include
	}
	if len(opts.exclude) > 0 {
		cfg.Exclude = opts.exclude
	}
	if opts.workers > 0 {
		cfg.Workers = opts.workers
	}
	return cfg
}

func runScan(root string, opts *scanOptions) error {
	logger := newLogger()

	proj, err := loadProjectConfig()
	if err != nil {
		return fmt.Errorf("read project config: %w", err)
	}
	cfg := buildScanConfig(opts, proj)

	var projFormat, projOut string
	if proj != nil {
		projFormat = proj.Format
		projOut = proj.Out
	}
	format, err := report.ParseFormat(resolveString(opts.format, projFormat, string(report.FormatJSON)))
	if err != nil {
		return err
	}
	out := resolveString(opts.out, projOut, "")

	s, err := scanner.NewScanner(logger)
	if err != nil {
		return fmt.Errorf("initialize scanner: %w", err)
	}
	defer s.Close()

	rep, err := s.Run(root, cfg)
	if err != nil {
		return err
	}

	if out == "" {
		return rep.Write(os.Stdout, format)
	}
	if err := rep.Save(out, format); err != nil {
		return err
	}
	logger.Info("report written", "path", out, "files", len(rep.Files))
	return nil
}
