package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sfcmap/sfcmap/pkg/report"
	"github.com/sfcmap/sfcmap/pkg/scanner"
)

func newWatchCommand() *cobra.Command {
	opts := &scanOptions{}

	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Scan once, then keep the report in sync as files change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			return runWatch(root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output file, rewritten on every change (required)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: json or yaml (default json)")
	cmd.Flags().StringSliceVar(&opts.include, "include", nil, "include glob patterns (doublestar)")
	cmd.Flags().StringSliceVar(&opts.exclude, "exclude", nil, "exclude glob patterns (doublestar)")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "analysis worker count (0 = auto)")

	return cmd
}

func runWatch(root string, opts *scanOptions) error {
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
	if out == "" {
		return fmt.Errorf("watch requires --out (or 'out' in %s)", projectConfigPath)
	}

	s, err := scanner.NewScanner(logger)
	if err != nil {
		return fmt.Errorf("initialize scanner: %w", err)
	}
	defer s.Close()

	rep, err := s.Run(root, cfg)
	if err != nil {
		return err
	}
	if err := rep.Save(out, format); err != nil {
		return err
	}
	logger.Info("initial report written", "path", out, "files", len(rep.Files))

	watcher, err := scanner.NewWatcher(s, rep, cfg, scanner.WatchOptions{
		OnUpdate: func(updated *report.Report) {
			if err := updated.Save(out, format); err != nil {
				logger.Error("rewrite report", "path", out, "error", err)
			}
		},
	}, logger)
	if err != nil {
		return err
	}
	if err := watcher.Start(root); err != nil {
		return err
	}
	defer watcher.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	logger.Info("shutting down")
	return nil
}
