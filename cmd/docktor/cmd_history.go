package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"docktor/internal/store"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded analysis runs",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of runs to list")
}

func runHistory(cmd *cobra.Command, args []string) error {
	s, err := store.Open(filepath.Join(workspace, cfg.Analyzer.HistoryDir))
	if err != nil {
		return err
	}
	defer s.Close()

	runs, err := s.List(historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no recorded runs")
		return nil
	}

	for _, run := range runs {
		fmt.Printf("%s  %s  sec=%d opt=%d issues=%d  %s\n",
			run.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			run.ID[:8], run.SecurityScore, run.OptimizationScore,
			len(run.Issues), run.DockerfilePath)
	}
	return nil
}
