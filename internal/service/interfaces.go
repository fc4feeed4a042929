// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/Veraticus/ledgercheck/internal/model"
)

// RecordStore defines the contract for our persistence layer.
type RecordStore interface {
	SaveRecord(ctx context.Context, record *model.Record) error
	// ListRecords returns the requester's records, newest first.
	ListRecords(ctx context.Context, requesterID string) ([]model.Record, error)
	// LatestRecord returns common.ErrNotFound when the requester has no records.
	LatestRecord(ctx context.Context, requesterID string) (*model.Record, error)

	Migrate(ctx context.Context) error
	Close() error
}

// Cipher encrypts serialized payloads at rest. Tokens are opaque to callers.
type Cipher interface {
	Encrypt(plaintext []byte) (string, error)
	Decrypt(token string) ([]byte, error)
}
