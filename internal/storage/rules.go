package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"milkrun/internal/common"
	"milkrun/internal/model"
)

// SaveAreaRules persists the full area rule set, replacing the previous one.
// Validation of the set (unique ids, single catch-all) is the classifier's
// job; the store persists what it is given.
func (s *SQLiteStore) SaveAreaRules(ctx context.Context, rules []model.AreaRule) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if rules == nil {
		return fmt.Errorf("%w: rules", ErrNilParameter)
	}

	payload, err := json.Marshal(rules)
	if err != nil {
		return fmt.Errorf("failed to encode area rules: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO area_rules (id, payload, updated_at) VALUES (1, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
	`, string(payload))
	if err != nil {
		return fmt.Errorf("failed to save area rules: %w", err)
	}
	return nil
}

// GetAreaRules returns the persisted rule set, or common.ErrNotFound when no
// customized set has been saved.
func (s *SQLiteStore) GetAreaRules(ctx context.Context) ([]model.AreaRule, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM area_rules WHERE id = 1`).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read area rules: %w", err)
	}

	var rules []model.AreaRule
	if err := json.Unmarshal([]byte(payload), &rules); err != nil {
		return nil, fmt.Errorf("failed to decode area rules: %w", err)
	}
	return rules, nil
}
