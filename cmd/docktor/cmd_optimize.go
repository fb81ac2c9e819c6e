package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"docktor/internal/dockerfile"
	"docktor/internal/logging"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize [dockerfiles...]",
	Short: "Rewrite Dockerfiles offline (no LLM calls)",
	Long: `Runs the deterministic rewrite passes on each Dockerfile:
merged package installs, grouped COPY instructions, BuildKit cache
arguments. Writes the result next to each input as <name>.optimized,
plus .dockerignore and requirements.txt in the same directory when those
files do not already exist.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runOptimize,
}

func runOptimize(cmd *cobra.Command, args []string) error {
	var g errgroup.Group
	g.SetLimit(4)

	for _, path := range args {
		path := path
		g.Go(func() error {
			if err := optimizeOne(path); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// optimizeOne rewrites a single Dockerfile and persists the outputs.
func optimizeOne(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	res, err := dockerfile.Rewrite(dockerfile.NewDocument(string(data)))
	if err != nil {
		return err
	}
	logging.Pipeline("rewrote %s: packages=%d", path, len(res.Packages))

	outPath := path + ".optimized"
	if err := os.WriteFile(outPath, []byte(res.Doc.String()), 0644); err != nil {
		return err
	}
	logger.Info("optimized dockerfile written", zap.String("path", outPath))

	dir := filepath.Dir(path)
	if err := writeIfAbsent(filepath.Join(dir, ".dockerignore"), strings.Join(res.IgnoreGlobs, "\n")+"\n"); err != nil {
		return err
	}
	if len(res.Packages) > 0 {
		if err := writeIfAbsent(filepath.Join(dir, "requirements.txt"), strings.Join(res.Packages, "\n")+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// writeIfAbsent creates the file with content unless it already exists.
// Existing files are the user's and are never overwritten.
func writeIfAbsent(path, content string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()
	_, err = f.WriteString(content)
	return err
}
