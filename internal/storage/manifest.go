package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"milkrun/internal/common"
	"milkrun/internal/model"
)

// storedRecord is the JSON shape manifests are cached in. Column order is
// kept alongside the fields so extra columns survive a reload.
type storedRecord struct {
	Fields  map[string]string `json:"fields"`
	Columns []string          `json:"columns"`
}

// SaveManifest caches the raw records of the last imported manifest,
// replacing any previous cache. The route model itself is never stored; it is
// rebuilt from these rows on demand.
func (s *SQLiteStore) SaveManifest(ctx context.Context, records []model.Record) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if records == nil {
		return fmt.Errorf("%w: records", ErrNilParameter)
	}

	stored := make([]storedRecord, len(records))
	for i, rec := range records {
		stored[i] = storedRecord{Fields: rec.Fields, Columns: rec.Columns}
	}
	payload, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO manifest_cache (id, payload, imported_at) VALUES (1, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, imported_at = excluded.imported_at
	`, string(payload))
	if err != nil {
		return fmt.Errorf("failed to save manifest: %w", err)
	}
	return nil
}

// GetManifest returns the cached manifest rows, or common.ErrNoManifest when
// nothing has been imported yet.
func (s *SQLiteStore) GetManifest(ctx context.Context) ([]model.Record, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM manifest_cache WHERE id = 1`).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, common.ErrNoManifest
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var stored []storedRecord
	if err := json.Unmarshal([]byte(payload), &stored); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}

	records := make([]model.Record, len(stored))
	for i, sr := range stored {
		records[i] = model.Record{Fields: sr.Fields, Columns: sr.Columns}
	}
	return records, nil
}
