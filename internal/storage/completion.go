package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// SaveCompletion replaces the persisted completion key set. The replace-all
// shape matches the tracker's save-after-mutation model and keeps the stored
// state exactly the in-memory sparse key set.
func (s *SQLiteStore) SaveCompletion(ctx context.Context, keys []string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM completion`); err != nil {
		return fmt.Errorf("failed to clear completion state: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO completion (key) VALUES (?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare completion insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, key := range keys {
		if key == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx, key); err != nil {
			return fmt.Errorf("failed to save completion key %q: %w", key, err)
		}
	}

	return tx.Commit()
}

// GetCompletion returns the persisted completion key set.
func (s *SQLiteStore) GetCompletion(ctx context.Context) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT key FROM completion ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to read completion state: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan completion key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate completion keys: %w", err)
	}
	return keys, nil
}

// completionCount is a test hook for verifying replace-all semantics.
func (s *SQLiteStore) completionCount(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM completion`).Scan(&n)
	if err != nil && err != sql.ErrNoRows {
		return 0, err
	}
	return n, nil
}
