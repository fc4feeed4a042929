package storage

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/ledgercheck/internal/common"
	"github.com/Veraticus/ledgercheck/internal/model"
)

func TestSaveAndListRecords(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, name := range []string{"jan.csv", "feb.csv", "mar.csv"} {
		require.NoError(t, store.SaveRecord(ctx, &model.Record{
			RequesterID:  "alice",
			Filename:     name,
			CreatedAt:    base.AddDate(0, i, 0),
			Revenue:      float64(1000 * (i + 1)),
			Expenses:     500,
			Profit:       float64(1000*(i+1)) - 500,
			AnalysisData: "token-" + name,
		}))
	}
	require.NoError(t, store.SaveRecord(ctx, &model.Record{
		RequesterID:  "bob",
		Filename:     model.ManualEntryFilename,
		AnalysisData: "token-bob",
	}))

	records, err := store.ListRecords(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "mar.csv", records[0].Filename)
	assert.Equal(t, "feb.csv", records[1].Filename)
	assert.Equal(t, "jan.csv", records[2].Filename)

	assert.NotEmpty(t, records[0].ID)
	assert.True(t, base.AddDate(0, 2, 0).Equal(records[0].CreatedAt))
	assert.InDelta(t, 3000.0, records[0].Revenue, 1e-9)
	assert.InDelta(t, 2500.0, records[0].Profit, 1e-9)
	assert.Equal(t, "token-mar.csv", records[0].AnalysisData)

	none, err := store.ListRecords(ctx, "carol")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSaveRecord_AssignsDefaults(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	record := &model.Record{RequesterID: "alice", Filename: "a.csv", AnalysisData: "x"}
	before := time.Now().Add(-time.Second)
	require.NoError(t, store.SaveRecord(ctx, record))

	assert.Len(t, record.ID, 36)
	assert.True(t, record.CreatedAt.After(before))
	assert.Equal(t, time.UTC, record.CreatedAt.Location())
}

func TestSaveRecord_Validation(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	tests := []struct {
		record  *model.Record
		wantErr error
		name    string
	}{
		{name: "nil record", record: nil, wantErr: ErrNilParameter},
		{name: "missing requester", record: &model.Record{Filename: "a.csv", AnalysisData: "x"}, wantErr: ErrInvalidRecord},
		{name: "missing filename", record: &model.Record{RequesterID: "a", AnalysisData: "x"}, wantErr: ErrInvalidRecord},
		{name: "missing data", record: &model.Record{RequesterID: "a", Filename: "a.csv"}, wantErr: ErrInvalidRecord},
		{
			name:    "non-finite revenue",
			record:  &model.Record{RequesterID: "a", Filename: "a.csv", AnalysisData: "x", Revenue: math.Inf(1)},
			wantErr: ErrInvalidRecord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.SaveRecord(ctx, tt.record)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLatestRecord(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	_, err := store.LatestRecord(ctx, "alice")
	require.ErrorIs(t, err, common.ErrNotFound)

	old := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveRecord(ctx, &model.Record{RequesterID: "alice", Filename: "old.csv", CreatedAt: old, AnalysisData: "1"}))
	require.NoError(t, store.SaveRecord(ctx, &model.Record{RequesterID: "alice", Filename: "new.csv", CreatedAt: old.Add(time.Hour), AnalysisData: "2"}))

	latest, err := store.LatestRecord(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "new.csv", latest.Filename)

	_, err = store.LatestRecord(ctx, "")
	require.ErrorIs(t, err, ErrEmptyString)
}
