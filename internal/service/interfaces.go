// Package service defines the contracts between the engine and its collaborators.
package service

import (
	"context"
	"time"

	"milkrun/internal/model"
)

// Storage defines the persistence contract the application consumes. All
// methods may fail; callers treat failures as non-fatal and keep operating on
// in-memory state.
type Storage interface {
	KV
	CompletionStore

	// Manifest cache: the last imported manifest, so commands can rebuild
	// the route model without re-reading the source file.
	SaveManifest(ctx context.Context, records []model.Record) error
	GetManifest(ctx context.Context) ([]model.Record, error)

	// Area rule set persistence.
	SaveAreaRules(ctx context.Context, rules []model.AreaRule) error
	GetAreaRules(ctx context.Context) ([]model.AreaRule, error)

	Migrate(ctx context.Context) error
	Close() error
}

// KV is the minimal key/value contract with best-effort durability.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// CompletionStore persists the sparse completion key set.
type CompletionStore interface {
	SaveCompletion(ctx context.Context, keys []string) error
	GetCompletion(ctx context.Context) ([]string, error)
}

// RetryOptions configures retry behavior for persistence writes.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
