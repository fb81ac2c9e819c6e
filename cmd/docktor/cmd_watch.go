package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"docktor/internal/watch"
)

var watchAnalyze bool

var watchCmd = &cobra.Command{
	Use:   "watch [dockerfile]",
	Short: "Re-run optimization whenever the Dockerfile changes",
	Long: `Watches the Dockerfile and re-runs the offline rewrite after each
change settles. With --analyze, each run also goes through the Gemini
review and updates the report.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchAnalyze, "analyze", false, "Also run the Gemini review on each change")
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := args[0]
	if _, err := os.Stat(path); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	run := func(p string) {
		var err error
		if watchAnalyze {
			err = analyzeOne(ctx, p)
		} else {
			err = optimizeOne(p)
		}
		if err != nil {
			logger.Error("run failed", zap.String("path", p), zap.Error(err))
			fmt.Fprintf(os.Stderr, "docktor: %v\n", err)
			return
		}
		fmt.Printf("updated outputs for %s\n", p)
	}

	w, err := watch.New(path, cfg.WatchDebounce(), run)
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		return err
	}
	defer w.Stop()

	// Initial run so the outputs exist before the first edit.
	run(path)

	fmt.Printf("watching %s (ctrl-c to stop)\n", path)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-sigCh:
	case <-ctx.Done():
	}
	return nil
}
