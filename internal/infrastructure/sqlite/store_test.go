package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storelens/backend/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	require.NoError(t, store.Init())

	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreCreateAndGet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	item := &domain.CatalogItem{
		Name:        "iPhone 13",
		Brand:       "Apple",
		Description: "6.1-inch display",
		Category:    "phones",
		PriceCents:  79900,
		Rating:      4.5,
		InStock:     true,
	}

	require.NoError(t, store.Create(ctx, item))
	assert.NotZero(t, item.ID)
	assert.False(t, item.CreatedAt.IsZero())

	got, err := store.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "iPhone 13", got.Name)
	assert.Equal(t, "Apple", got.Brand)
	assert.Equal(t, int64(79900), got.PriceCents)
	assert.Equal(t, 4.5, got.Rating)
	assert.True(t, got.InStock)
}

func TestStoreCreateRequiresName(t *testing.T) {
	store := openTestStore(t)

	err := store.Create(context.Background(), &domain.CatalogItem{Brand: "Apple"})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestStoreGetMissing(t *testing.T) {
	store := openTestStore(t)

	_, err := store.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestStoreListOrdering(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	names := []string{"Zebra Lamp", "Apple Slicer", "Mango Cutter"}
	for _, name := range names {
		require.NoError(t, store.Create(ctx, &domain.CatalogItem{Name: name}))
	}

	items, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)

	// Insertion order, not alphabetical: suggestions depend on it.
	for i, name := range names {
		assert.Equal(t, name, items[i].Name)
	}
}

func TestStoreUpdate(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	item := &domain.CatalogItem{Name: "Wireless Mouse", InStock: true}
	require.NoError(t, store.Create(ctx, item))

	item.Name = "Wireless Mouse Pro"
	item.InStock = false
	item.Rating = 4.2
	require.NoError(t, store.Update(ctx, item))

	got, err := store.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Wireless Mouse Pro", got.Name)
	assert.False(t, got.InStock)
	assert.Equal(t, 4.2, got.Rating)
}

func TestStoreUpdateMissing(t *testing.T) {
	store := openTestStore(t)

	err := store.Update(context.Background(), &domain.CatalogItem{ID: 42, Name: "Ghost"})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestStoreDelete(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	item := &domain.CatalogItem{Name: "Standing Desk"}
	require.NoError(t, store.Create(ctx, item))

	require.NoError(t, store.Delete(ctx, item.ID))

	_, err := store.GetByID(ctx, item.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	err = store.Delete(ctx, item.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestStoreCount(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	require.NoError(t, store.Create(ctx, &domain.CatalogItem{Name: "One"}))
	require.NoError(t, store.Create(ctx, &domain.CatalogItem{Name: "Two"}))

	count, err = store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestStoreSeed(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	seed := `[
		{"name": "iPhone 13", "brand": "Apple", "category": "phones", "rating": 4.5, "inStock": true},
		{"name": "Galaxy S21", "brand": "Samsung", "category": "phones", "rating": 4.4, "inStock": false},
		{"name": "", "brand": "Nameless"},
		{"name": "Wireless Mouse", "brand": "Logitech", "category": "accessories", "rating": 4.1, "inStock": true}
	]`

	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o644))

	inserted, err := store.Seed(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 3, inserted, "nameless entries are skipped")

	items, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "iPhone 13", items[0].Name)
	assert.True(t, items[0].InStock)
	assert.Equal(t, "Wireless Mouse", items[2].Name)
}

func TestStoreSeedBadFile(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	t.Run("missing file", func(t *testing.T) {
		_, err := store.Seed(ctx, filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"not": "an array"`), 0o644))

		_, err := store.Seed(ctx, path)
		assert.Error(t, err)
	})
}

func TestStoreReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Init())
	require.NoError(t, store.Create(context.Background(), &domain.CatalogItem{Name: "Persistent"}))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()
	require.NoError(t, reopened.Init())

	items, err := reopened.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Persistent", items[0].Name)
}
