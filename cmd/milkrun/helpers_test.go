package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"milkrun/internal/common"
	"milkrun/internal/model"
	"milkrun/internal/testutil"
)

func TestSplitPatterns(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "single", raw: "liberty", want: []string{"liberty"}},
		{name: "multiple with spaces", raw: "churn creek, hartnell ,victor", want: []string{"churn creek", "hartnell", "victor"}},
		{name: "empties dropped", raw: ",a,,b,", want: []string{"a", "b"}},
		{name: "blank yields none", raw: "   ", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitPatterns(tt.raw))
		})
	}
}

func TestFormatProgress(t *testing.T) {
	assert.Equal(t, "3/10 (30%)", formatProgress(3, 10, 30))
	assert.Equal(t, "0/0 (0%)", formatProgress(0, 0, 0))
}

func TestGetDatabase_ReportsStorageUnavailable(t *testing.T) {
	// A regular file where a directory is needed makes the open fail.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	viper.Set("database.path", filepath.Join(blocker, "nested", "milkrun.db"))
	t.Cleanup(func() { viper.Set("database.path", "") })

	_, _, err := getDatabase(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrStorageUnavailable)
}

func TestLoadClassifier_FallsBackToDefaults(t *testing.T) {
	ctx := context.Background()
	store := testutil.SetupTestStore(t)

	// Nothing saved yet: defaults.
	classifier := loadClassifier(ctx, store)
	assert.Len(t, classifier.Export(), 6)

	// A saved custom set is used.
	custom := []model.AreaRule{
		{ID: "a", Name: "A", Patterns: []string{"alpha"}, Priority: 1},
		{ID: "rest", Name: "Rest", Patterns: []string{}, Priority: 99},
	}
	require.NoError(t, store.SaveAreaRules(ctx, custom))
	classifier = loadClassifier(ctx, store)
	assert.Len(t, classifier.Export(), 2)

	// An invalid saved set (no catch-all) falls back to defaults.
	require.NoError(t, store.SaveAreaRules(ctx, custom[:1]))
	classifier = loadClassifier(ctx, store)
	assert.Len(t, classifier.Export(), 6)
}

func TestLoadModel_RequiresImportedManifest(t *testing.T) {
	ctx := context.Background()
	store := testutil.SetupTestStore(t)

	_, err := loadModel(ctx, store, loadClassifier(ctx, store))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no manifest imported yet")
}

func TestLoadModel_RebuildsFromCache(t *testing.T) {
	ctx := context.Background()
	store := testutil.SetupTestStore(t)

	rec := model.NewRecord([]string{model.ColCustomerNumber, model.ColAccountName, model.ColAddress})
	rec.Set(model.ColCustomerNumber, "1")
	rec.Set(model.ColAccountName, "A")
	rec.Set(model.ColAddress, "1255 Liberty St")
	require.NoError(t, store.SaveManifest(ctx, []model.Record{rec}))

	m, err := loadModel(ctx, store, loadClassifier(ctx, store))
	require.NoError(t, err)
	require.Len(t, m.Customers, 1)
	assert.Equal(t, "Shasta Ortho", m.Customers[0].Area)
}
