package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/ledgercheck/internal/common"
	"github.com/Veraticus/ledgercheck/internal/model"
)

const recordColumns = `id, requester_id, filename, created_at, revenue, expenses, profit, analysis_data`

// SaveRecord inserts record, assigning an ID and timestamp when unset.
func (s *Store) SaveRecord(ctx context.Context, record *model.Record) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRecord(record); err != nil {
		return err
	}

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	record.CreatedAt = record.CreatedAt.UTC()

	_, err := s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO assessment_records (`+recordColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
		record.ID,
		record.RequesterID,
		record.Filename,
		record.CreatedAt,
		record.Revenue,
		record.Expenses,
		record.Profit,
		record.AnalysisData,
	)
	if err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}
	return nil
}

// ListRecords returns the requester's records, newest first.
func (s *Store) ListRecords(ctx context.Context, requesterID string) ([]model.Record, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(requesterID, "requesterID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT `+recordColumns+`
		FROM assessment_records
		WHERE requester_id = ?
		ORDER BY created_at DESC`), requesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.Record
	for rows.Next() {
		record, scanErr := scanRecord(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating records: %w", err)
	}

	return records, nil
}

// LatestRecord returns the requester's newest record or common.ErrNotFound.
func (s *Store) LatestRecord(ctx context.Context, requesterID string) (*model.Record, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(requesterID, "requesterID"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT `+recordColumns+`
		FROM assessment_records
		WHERE requester_id = ?
		ORDER BY created_at DESC
		LIMIT 1`), requesterID)

	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	return record, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*model.Record, error) {
	var record model.Record
	err := row.Scan(
		&record.ID,
		&record.RequesterID,
		&record.Filename,
		&record.CreatedAt,
		&record.Revenue,
		&record.Expenses,
		&record.Profit,
		&record.AnalysisData,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan record: %w", err)
	}
	record.CreatedAt = record.CreatedAt.UTC()
	return &record, nil
}
