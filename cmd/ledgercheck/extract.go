package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Veraticus/ledgercheck/internal/cli"
	"github.com/Veraticus/ledgercheck/internal/common"
	"github.com/Veraticus/ledgercheck/internal/ledger"
	"github.com/Veraticus/ledgercheck/internal/model"
)

const defaultConcurrency = 4

// fileOutcome is the result of assessing one file. Exactly one of Result and
// Err is set.
type fileOutcome struct {
	Result *model.ExtractionResult `json:"result,omitempty"`
	Err    error                   `json:"-"`
	Path   string                  `json:"path"`
	Error  string                  `json:"error,omitempty"`
}

func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract FILE...",
		Short: "Assess CSV or Excel documents",
		Long: `Extract revenue and expense totals from CSV or XLSX documents and assess
each one. Files are processed concurrently; a failure in one file does not
stop the others.`,
		Example: `  ledgercheck extract q1.csv q2.xlsx
  ledgercheck extract --save --concurrency 8 exports/*.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: runExtract,
	}

	cmd.Flags().Int("concurrency", defaultConcurrency, "number of files processed at once")
	cmd.Flags().Bool("save", false, "store each assessment")
	cmd.Flags().Bool("json", false, "print JSON instead of reports")

	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	save, _ := cmd.Flags().GetBool("save")
	asJSON, _ := cmd.Flags().GetBool("json")
	if concurrency < 1 {
		concurrency = 1
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	interruptHandler := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx, stop := interruptHandler.HandleInterrupts(cmd.Context(), "Files already assessed were kept; rerun to finish the rest.")
	defer stop()

	svc, cleanup, err := newService(ctx, cfg, save)
	if err != nil {
		return err
	}
	defer cleanup()

	outcomes := extractFiles(ctx, cmd, svc, args, concurrency, save)
	if interruptHandler.WasInterrupted() {
		return context.Canceled
	}

	if asJSON {
		return writeJSON(cmd.OutOrStdout(), outcomes)
	}

	var failed int
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			failed++
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatError(fmt.Sprintf("%s: %v", outcome.Path, outcome.Err)))
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout(), cli.RenderAssessment(outcome.Result))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be assessed", failed, len(outcomes))
	}
	return nil
}

// extractFiles assesses paths with at most concurrency files in flight.
// Outcomes keep the order of paths.
func extractFiles(ctx context.Context, cmd *cobra.Command, svc *ledger.Service, paths []string, concurrency int, save bool) []fileOutcome {
	outcomes := make([]fileOutcome, len(paths))
	bar := cli.NewProgressBar(cmd.ErrOrStderr(), len(paths), "Assessing documents")

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, path := range paths {
		g.Go(func() error {
			result, err := extractFile(gctx, svc, path, save)
			outcomes[i] = fileOutcome{Path: path, Result: result, Err: err}
			if err != nil {
				outcomes[i].Error = err.Error()
				common.LogError(err, "file could not be assessed", common.Fields{"path": path})
			}

			mu.Lock()
			_ = bar.Add(1)
			mu.Unlock()

			// Only cancellation stops the group; per-file errors are reported.
			if errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}
	_ = g.Wait()
	_ = bar.Finish()

	return outcomes
}

func extractFile(ctx context.Context, svc *ledger.Service, path string, save bool) (*model.ExtractionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(path) //nolint:gosec // user-provided path is intended
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	filename := filepath.Base(path)
	if save {
		return svc.AnalyzeUpload(ctx, requesterID, filename, file)
	}
	return svc.Extract(ctx, filename, file)
}
