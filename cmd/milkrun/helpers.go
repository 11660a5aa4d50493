package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"milkrun/internal/area"
	"milkrun/internal/common"
	"milkrun/internal/completion"
	"milkrun/internal/ingest"
	"milkrun/internal/model"
	"milkrun/internal/storage"
)

// getDatabase opens the configured SQLite store and runs migrations. The
// returned cleanup closes the store.
func getDatabase(ctx context.Context) (*storage.SQLiteStore, func(), error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".config", "milkrun", "milkrun.db")
	}

	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, func() { _ = store.Close() }, nil
}

// loadClassifier builds the area classifier from the persisted rule set,
// falling back to the built-in defaults when none is saved or the saved set
// fails validation.
func loadClassifier(ctx context.Context, store *storage.SQLiteStore) *area.Classifier {
	rules, err := store.GetAreaRules(ctx)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			common.LogWarn("Failed to load saved area rules; using defaults", common.Fields{"error": err.Error()})
		}
		return area.NewClassifier()
	}

	classifier, err := area.NewClassifierWithRules(rules)
	if err != nil {
		common.LogWarn("Saved area rules are invalid; using defaults", common.Fields{"error": err.Error()})
		return area.NewClassifier()
	}
	return classifier
}

// loadModel rebuilds the route model from the cached manifest.
func loadModel(ctx context.Context, store *storage.SQLiteStore, classifier *area.Classifier) (*model.RouteModel, error) {
	records, err := store.GetManifest(ctx)
	if err != nil {
		if errors.Is(err, common.ErrNoManifest) {
			return nil, common.NewUserError("no manifest imported yet; run 'milkrun import <file.csv>' first", nil)
		}
		return nil, fmt.Errorf("failed to load cached manifest: %w", err)
	}

	return ingest.NewPipeline(classifier).Ingest(records), nil
}

// loadTracker hydrates completion state from the store. A read failure is
// non-fatal: the session continues with an empty in-memory state.
func loadTracker(ctx context.Context, store *storage.SQLiteStore) *completion.Tracker {
	tracker := completion.NewTracker(store)
	if err := tracker.Load(ctx); err != nil {
		common.LogWarn("Failed to load completion state; starting empty", common.Fields{"error": err.Error()})
	}
	return tracker
}

// saveRules persists the classifier's rule set, logging rather than failing
// on storage trouble.
func saveRules(ctx context.Context, store *storage.SQLiteStore, classifier *area.Classifier) {
	if err := store.SaveAreaRules(ctx, classifier.Export()); err != nil {
		common.LogError(err, "Failed to persist area rules; changes apply to this session only", nil)
	}
}

// splitPatterns parses a comma-separated pattern list, dropping empties.
func splitPatterns(raw string) []string {
	parts := strings.Split(raw, ",")
	patterns := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			patterns = append(patterns, p)
		}
	}
	return patterns
}

// formatProgress renders "completed/total (pct%)".
func formatProgress(completed, total, pct int) string {
	return fmt.Sprintf("%d/%d (%d%%)", completed, total, pct)
}
