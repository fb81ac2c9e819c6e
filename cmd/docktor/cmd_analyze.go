package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"docktor/internal/analyzer"
	"docktor/internal/dockerfile"
	"docktor/internal/report"
	"docktor/internal/store"
)

var (
	analyzeRaw    bool
	analyzeNoSave bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [dockerfile]",
	Short: "Rewrite a Dockerfile, then review it with Gemini",
	Long: `Runs the deterministic rewrite, sends the result to Gemini for a
structured security and optimization review, writes the Markdown report,
renders it to the terminal, and records the run in the history store.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeRaw, "raw", false, "Print raw markdown instead of rendered output")
	analyzeCmd.Flags().BoolVar(&analyzeNoSave, "no-save", false, "Skip recording the run in history")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	return analyzeOne(cmd.Context(), args[0])
}

func analyzeOne(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	res, err := dockerfile.Rewrite(dockerfile.NewDocument(string(data)))
	if err != nil {
		return err
	}

	client := analyzer.NewGeminiClient(cfg)
	verdict, err := analyzer.New(client).Analyze(ctx, res.Doc.String())
	if err != nil {
		return err
	}

	md := report.Generate(verdict)
	reportPath := filepath.Join(workspace, cfg.Analyzer.ReportPath)
	if err := os.WriteFile(reportPath, []byte(md), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	logger.Info("report written", zap.String("path", reportPath))

	if analyzeRaw {
		fmt.Println(md)
	} else {
		fmt.Print(report.Render(md))
	}

	if cfg.Analyzer.SaveHistory && !analyzeNoSave {
		s, err := store.Open(filepath.Join(workspace, cfg.Analyzer.HistoryDir))
		if err != nil {
			return err
		}
		defer s.Close()

		id, err := s.Save(path, verdict)
		if err != nil {
			return err
		}
		logger.Info("run recorded", zap.String("id", id))
	}

	fmt.Printf("\nSecurity: %d/100  Optimization: %d/100  Issues: %d\n",
		verdict.SecurityScore, verdict.OptimizationScore, len(verdict.Issues))
	return nil
}
