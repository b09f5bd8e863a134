package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pitchslap/pitchslap/internal/metrics"
	"github.com/pitchslap/pitchslap/internal/observability"
	"github.com/pitchslap/pitchslap/internal/output"
	"github.com/pitchslap/pitchslap/internal/pitch"
)

var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Run many pitches through one mode",
	Long: `Read pitches from a file (one per line, # for comments, - for stdin) and
run each through the chosen mode. Scorecards are ranked by total score.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	addOutputFlags(batchCmd)
	batchCmd.Flags().String("mode", string(pitch.ModeScorecard), "Mode: roast, fixit, scorecard, branding, meme")
	batchCmd.Flags().Int("concurrency", 3, "Concurrent generations")
	batchCmd.Flags().String("out-dir", "", "Write one file per pitch into this directory")
}

type batchJob struct {
	index int
	text  string
}

func runBatch(cmd *cobra.Command, args []string) error {
	rawMode, _ := cmd.Flags().GetString("mode")
	mode, err := pitch.ParseMode(rawMode)
	if err != nil {
		return err
	}
	format, err := resolveOutputFormat(cmd)
	if err != nil {
		return err
	}
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	if concurrency < 1 {
		return errors.New("concurrency must be at least 1")
	}
	outDir, _ := cmd.Flags().GetString("out-dir")
	if strings.TrimSpace(outDir) != "" {
		if out, _ := cmd.Flags().GetString("out"); strings.TrimSpace(out) != "" {
			return errors.New("--out and --out-dir are mutually exclusive")
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	pitches, err := readPitchLines(args[0])
	if err != nil {
		return err
	}

	startedAt := time.Now()
	engine := newEngine(cfg, newChooser(cfg), pitch.WithObserver(metrics.PitchObserver(observability.CLILogger.Debug)))
	responses := runBatchGenerations(cmd.Context(), engine, mode, pitches, concurrency)
	if mode == pitch.ModeScorecard {
		responses = rankScorecards(responses)
	}

	formatter := output.NewFormatter(format)
	if strings.TrimSpace(outDir) != "" {
		if err := writeBatchFiles(formatter, format, outDir, responses); err != nil {
			return err
		}
	} else {
		parts := make([]string, 0, len(responses))
		for _, resp := range responses {
			rendered, err := formatter.FormatResponse(resp)
			if err != nil {
				return err
			}
			parts = append(parts, strings.TrimRight(rendered, "\n"))
		}
		if err := emit(cmd, strings.Join(parts, "\n\n")); err != nil {
			return err
		}
	}

	elapsed := time.Since(startedAt)
	observability.CLILogger.Debug("Batch complete",
		zap.Int("pitches", len(pitches)),
		zap.String("mode", string(mode)),
		zap.Duration("elapsed", elapsed))
	return nil
}

// runBatchGenerations fans pitches out over a worker pool and keeps input
// order. A cancelled context leaves the remaining slots as failures.
func runBatchGenerations(ctx context.Context, engine *pitch.Engine, mode pitch.Mode, pitches []string, concurrency int) []pitch.Response {
	if ctx == nil {
		ctx = context.Background()
	}
	results := make([]pitch.Response, len(pitches))
	jobs := make(chan batchJob)

	var wg sync.WaitGroup
	worker := func() {
		defer wg.Done()
		for job := range jobs {
			results[job.index] = engine.GenerateContext(ctx, job.text, mode)
		}
	}

	if concurrency > len(pitches) {
		concurrency = len(pitches)
	}
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go worker()
	}

	sent := 0
sendLoop:
	for i, text := range pitches {
		select {
		case <-ctx.Done():
			break sendLoop
		case jobs <- batchJob{index: i, text: text}:
			sent++
		}
	}
	close(jobs)
	wg.Wait()

	for i := sent; i < len(results); i++ {
		results[i] = pitch.Response{Mode: mode, Error: "cancelled"}
	}
	return results
}

// rankScorecards orders scored responses by descending total. Responses
// without scores sink to the end.
func rankScorecards(responses []pitch.Response) []pitch.Response {
	ranked := slices.Clone(responses)
	slices.SortStableFunc(ranked, func(a, b pitch.Response) int {
		return totalOf(b) - totalOf(a)
	})
	return ranked
}

func totalOf(r pitch.Response) int {
	if r.Scores == nil {
		return -1
	}
	return r.Scores.Total
}

func writeBatchFiles(formatter output.Formatter, format output.Format, dir string, responses []pitch.Response) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	for i, resp := range responses {
		rendered, err := formatter.FormatResponse(resp)
		if err != nil {
			return err
		}
		label := string(resp.Mode)
		if resp.StartupName != "" {
			label = resp.StartupName
		}
		name := fmt.Sprintf("%03d-%s.%s", i+1, sanitizeFilename(label), outputExtension(format))
		if err := os.WriteFile(filepath.Join(dir, name), []byte(rendered), 0644); err != nil {
			return err
		}
	}
	return nil
}
