package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"milkrun/internal/common"
	"milkrun/internal/model"
)

func setupStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_MigrateIsIdempotent(t *testing.T) {
	store := setupStore(t)
	require.NoError(t, store.Migrate(context.Background()))
}

func TestSQLiteStore_KV(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	_, ok, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "theme", "dark"))
	value, ok, err := store.Get(ctx, "theme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", value)

	require.NoError(t, store.Set(ctx, "theme", "light"))
	value, _, err = store.Get(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, "light", value)

	require.NoError(t, store.Delete(ctx, "theme"))
	_, ok, err = store.Get(ctx, "theme")
	require.NoError(t, err)
	assert.False(t, ok)

	// Absent keys delete cleanly.
	require.NoError(t, store.Delete(ctx, "theme"))

	err = store.Set(ctx, "  ", "x")
	assert.ErrorIs(t, err, ErrEmptyString)
}

func TestSQLiteStore_CompletionReplaceAll(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	keys, err := store.GetCompletion(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)

	require.NoError(t, store.SaveCompletion(ctx, []string{"1:x1", "1:x2", "2"}))
	keys, err = store.GetCompletion(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"1:x1", "1:x2", "2"}, keys)

	// A later save fully replaces the key set.
	require.NoError(t, store.SaveCompletion(ctx, []string{"2"}))
	keys, err = store.GetCompletion(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, keys)

	n, err := store.completionCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, store.SaveCompletion(ctx, nil))
	keys, err = store.GetCompletion(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestSQLiteStore_ManifestRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	_, err := store.GetManifest(ctx)
	assert.ErrorIs(t, err, common.ErrNoManifest)

	rec := model.NewRecord([]string{model.ColCustomerNumber, "Extra"})
	rec.Set(model.ColCustomerNumber, "1")
	rec.Set("Extra", "note")

	require.NoError(t, store.SaveManifest(ctx, []model.Record{rec}))

	got, err := store.GetManifest(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].Get(model.ColCustomerNumber))
	assert.Equal(t, "note", got[0].Get("Extra"))
	assert.Equal(t, []string{model.ColCustomerNumber, "Extra"}, got[0].Columns)

	// Re-import replaces the cache wholesale.
	rec2 := model.NewRecord([]string{model.ColCustomerNumber})
	rec2.Set(model.ColCustomerNumber, "2")
	require.NoError(t, store.SaveManifest(ctx, []model.Record{rec2, rec2}))

	got, err = store.GetManifest(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSQLiteStore_AreaRulesRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	_, err := store.GetAreaRules(ctx)
	assert.ErrorIs(t, err, common.ErrNotFound)

	rules := []model.AreaRule{
		{ID: "a", Name: "A", Patterns: []string{"alpha"}, Priority: 1, Color: "#fff", Icon: "🅰️"},
		{ID: "rest", Name: "Rest", Patterns: []string{}, Priority: 99},
	}
	require.NoError(t, store.SaveAreaRules(ctx, rules))

	got, err := store.GetAreaRules(ctx)
	require.NoError(t, err)
	assert.Equal(t, rules, got)
}

func TestSQLiteStore_Reset(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	require.NoError(t, store.Set(ctx, "k", "v"))
	require.NoError(t, store.SaveCompletion(ctx, []string{"1"}))

	require.NoError(t, store.Reset(ctx))

	_, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	keys, err := store.GetCompletion(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestNewSQLiteStore_EmptyPath(t *testing.T) {
	_, err := NewSQLiteStore("")
	assert.ErrorIs(t, err, ErrEmptyString)
}
