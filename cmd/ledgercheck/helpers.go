package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/goccy/go-json"
	"github.com/spf13/viper"

	"github.com/Veraticus/ledgercheck/internal/assess"
	"github.com/Veraticus/ledgercheck/internal/common"
	"github.com/Veraticus/ledgercheck/internal/config"
	"github.com/Veraticus/ledgercheck/internal/crypt"
	"github.com/Veraticus/ledgercheck/internal/extract"
	"github.com/Veraticus/ledgercheck/internal/ledger"
	"github.com/Veraticus/ledgercheck/internal/recommend"
	"github.com/Veraticus/ledgercheck/internal/storage"
)

// loadConfig reads the typed configuration from the global viper instance.
func loadConfig() (*config.Config, error) {
	return config.Load(viper.GetViper())
}

// initStorage opens and migrates the configured record store.
func initStorage(ctx context.Context, cfg *config.Config) (*storage.Store, error) {
	store, err := storage.Open(ctx, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// newService builds the assessment service. With persist set it also opens
// the store and cipher; the returned cleanup closes them.
func newService(ctx context.Context, cfg *config.Config, persist bool) (*ledger.Service, func(), error) {
	logger := slog.Default()

	engine := recommend.NewEngineFromConfig(ctx, cfg.LLM.ClientConfig(), assess.DefaultExpensePolicy, logger)
	calc := assess.NewCalculator(engine, assess.WithLogger(logger))
	extractor := extract.New(calc, logger)

	if !persist {
		return ledger.NewService(calc, extractor, nil, nil, ledger.WithLogger(logger)), func() {}, nil
	}

	cipher, err := crypt.NewCipher(cfg.Security.EncryptionKey)
	if err != nil {
		return nil, nil, common.NewUserError("set security.encryption_key (or ENCRYPTION_KEY); generate one with 'ledgercheck keygen'", err)
	}

	store, err := initStorage(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	svc := ledger.NewService(calc, extractor, store, cipher, ledger.WithLogger(logger))
	return svc, func() { _ = store.Close() }, nil
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
