package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/ledgercheck/internal/crypt"
)

func keygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate an encryption key for stored assessments",
		Long: `Print a new random key suitable for security.encryption_key.

Keep it safe: stored assessments cannot be read without it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := crypt.GenerateKey()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), key)
			return err
		},
	}
}
