package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/ledgercheck/internal/server"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve the assessment API. Requests identify their requester with the
configured header (X-Requester-ID by default).`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "listen address (default: server.addr)")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}

	svc, cleanup, err := newService(ctx, cfg, true)
	if err != nil {
		return err
	}
	defer cleanup()

	return server.New(svc, cfg.Server.Options(), slog.Default()).ListenAndServe(ctx)
}
