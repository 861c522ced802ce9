package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Niffb/Livwishlist/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *LocalItemRepository {
	t.Helper()
	return NewLocalItemRepository(filepath.Join(t.TempDir(), "items.json"))
}

func item(id, name string) *models.WishlistItem {
	return &models.WishlistItem{
		ID:        id,
		Name:      name,
		URL:       "https://example.com/" + id,
		Category:  models.CategoryMisc,
		CreatedAt: time.Now(),
	}
}

func TestLocalCreateAndList(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateItem(ctx, item("a", "First")))
	require.NoError(t, repo.CreateItem(ctx, item("b", "Second")))

	items, err := repo.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)

	// Prepend keeps newest first
	assert.Equal(t, "b", items[0].ID)
	assert.Equal(t, "a", items[1].ID)
}

func TestLocalListEmptyFile(t *testing.T) {
	repo := newTestRepo(t)

	items, err := repo.ListItems(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestLocalUpdate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateItem(ctx, item("a", "Old Name")))

	err := repo.UpdateItem(ctx, "a", map[string]interface{}{
		"name":  "New Name",
		"price": "£9.99",
	})
	require.NoError(t, err)

	items, err := repo.ListItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, "New Name", items[0].Name)
	assert.Equal(t, "£9.99", items[0].Price)
	assert.Equal(t, "https://example.com/a", items[0].URL)
}

func TestLocalUpdateMissing(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.UpdateItem(context.Background(), "ghost", map[string]interface{}{"name": "x"})
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestLocalDeleteReturnsItemAndIndex(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateItem(ctx, item("a", "First")))
	require.NoError(t, repo.CreateItem(ctx, item("b", "Second")))
	require.NoError(t, repo.CreateItem(ctx, item("c", "Third")))

	// List order is c, b, a; deleting b removes position 1
	removed, index, err := repo.DeleteItem(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "b", removed.ID)
	assert.Equal(t, "Second", removed.Name)
	assert.Equal(t, 1, index)

	items, err := repo.ListItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, []string{items[0].ID, items[1].ID})
}

func TestLocalDeleteMissing(t *testing.T) {
	repo := newTestRepo(t)

	_, _, err := repo.DeleteItem(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestLocalRestorePreservesPosition(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateItem(ctx, item("a", "First")))
	require.NoError(t, repo.CreateItem(ctx, item("b", "Second")))
	require.NoError(t, repo.CreateItem(ctx, item("c", "Third")))

	removed, index, err := repo.DeleteItem(ctx, "b")
	require.NoError(t, err)

	require.NoError(t, repo.RestoreItem(ctx, removed, index))

	items, err := repo.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{items[0].ID, items[1].ID, items[2].ID})
	assert.Equal(t, "Second", items[1].Name)
}

func TestLocalRestoreClampsIndex(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateItem(ctx, item("a", "First")))
	require.NoError(t, repo.RestoreItem(ctx, item("z", "Way Past End"), 99))

	items, err := repo.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "z", items[1].ID)
}

func TestLocalPersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.json")
	ctx := context.Background()

	first := NewLocalItemRepository(path)
	require.NoError(t, first.CreateItem(ctx, item("a", "Survivor")))

	second := NewLocalItemRepository(path)
	items, err := second.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Survivor", items[0].Name)
}
