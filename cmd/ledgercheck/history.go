package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/ledgercheck/internal/cli"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored assessments",
		Long:  `List the stored assessments for the current --user, newest first.`,
		RunE:  runHistory,
	}

	cmd.Flags().Bool("json", false, "print JSON instead of a table")
	cmd.Flags().Bool("latest", false, "print only the most recent stored assessment as JSON")

	return cmd
}

func runHistory(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	asJSON, _ := cmd.Flags().GetBool("json")
	latest, _ := cmd.Flags().GetBool("latest")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	svc, cleanup, err := newService(ctx, cfg, true)
	if err != nil {
		return err
	}
	defer cleanup()

	if latest {
		raw, latestErr := svc.Latest(ctx, requesterID)
		if latestErr != nil {
			return latestErr
		}
		return writeJSON(cmd.OutOrStdout(), raw)
	}

	entries, err := svc.History(ctx, requesterID)
	if err != nil {
		return err
	}

	if asJSON {
		return writeJSON(cmd.OutOrStdout(), entries)
	}

	if len(entries) == 0 {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("No stored assessments"))
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderHistory(entries))
	return err
}
