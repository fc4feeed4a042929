package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Veraticus/ledgercheck/internal/cli"
	"github.com/Veraticus/ledgercheck/internal/common"
	"github.com/Veraticus/ledgercheck/internal/model"
)

func assessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Assess figures entered on the command line or an OFX statement",
		Long: `Assess revenue and expense figures directly, or the totals of an OFX/QFX
bank statement. Profit defaults to revenue minus expenses.`,
		Example: `  ledgercheck assess --revenue 1250000 --expenses 850000
  ledgercheck assess --ofx january.qfx --save`,
		RunE: runAssess,
	}

	cmd.Flags().Float64("revenue", 0, "total revenue")
	cmd.Flags().Float64("expenses", 0, "total expenses")
	cmd.Flags().Float64("profit", 0, "net profit (default: revenue - expenses)")
	cmd.Flags().String("ofx", "", "assess an OFX/QFX statement instead of figures")
	cmd.Flags().Bool("save", false, "store the assessment")
	cmd.Flags().Bool("json", false, "print JSON instead of a report")

	return cmd
}

func runAssess(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	ofxPath, _ := cmd.Flags().GetString("ofx")
	save, _ := cmd.Flags().GetBool("save")
	asJSON, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	svc, cleanup, err := newService(ctx, cfg, save)
	if err != nil {
		return err
	}
	defer cleanup()

	var (
		result   *model.ExtractionResult
		filename string
	)
	if ofxPath != "" {
		file, openErr := os.Open(ofxPath) //nolint:gosec // user-provided path is intended
		if openErr != nil {
			return fmt.Errorf("failed to open statement: %w", openErr)
		}
		defer func() { _ = file.Close() }()

		filename = filepath.Base(ofxPath)
		if result, err = svc.EvaluateStatement(ctx, filename, file); err != nil {
			return err
		}
	} else {
		facts, factsErr := factsFromFlags(cmd)
		if factsErr != nil {
			return factsErr
		}
		filename = model.ManualEntryFilename
		result = svc.Evaluate(ctx, filename, model.MethodManualEntry, facts, nil)
	}

	if save {
		if err := svc.Record(ctx, requesterID, filename, result); err != nil {
			return fmt.Errorf("failed to save assessment: %w", err)
		}
	}

	if asJSON {
		return writeJSON(cmd.OutOrStdout(), result)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderAssessment(result))
	if err == nil && save {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Assessment saved"))
	}
	return err
}

func factsFromFlags(cmd *cobra.Command) (model.FinancialFacts, error) {
	if !cmd.Flags().Changed("revenue") || !cmd.Flags().Changed("expenses") {
		return model.FinancialFacts{}, common.NewUserError("--revenue and --expenses are required (or use --ofx)", nil)
	}

	revenue, _ := cmd.Flags().GetFloat64("revenue")
	expenses, _ := cmd.Flags().GetFloat64("expenses")
	if revenue < 0 || expenses < 0 {
		return model.FinancialFacts{}, common.NewUserError("revenue and expenses must not be negative", nil)
	}

	facts := model.NewFinancialFacts(revenue, expenses)
	if cmd.Flags().Changed("profit") {
		facts.Profit, _ = cmd.Flags().GetFloat64("profit")
	}
	return facts, nil
}
