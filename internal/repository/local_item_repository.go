package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Niffb/Livwishlist/internal/models"
)

// LocalItemRepository persists the whole item list as a single JSON blob on
// disk, rewritten after every mutation. Unlike the remote backend it keeps
// explicit positions, so undo can put an item back exactly where it was.
type LocalItemRepository struct {
	path string
	mu   sync.Mutex
}

func NewLocalItemRepository(path string) *LocalItemRepository {
	return &LocalItemRepository{path: path}
}

func (r *LocalItemRepository) load() ([]models.WishlistItem, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []models.WishlistItem{}, nil
		}
		return nil, fmt.Errorf("failed to read item file: %v", err)
	}

	var items []models.WishlistItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse item file: %v", err)
	}
	if items == nil {
		items = []models.WishlistItem{}
	}
	return items, nil
}

func (r *LocalItemRepository) save(items []models.WishlistItem) error {
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %v", err)
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode items: %v", err)
	}
	if err := os.WriteFile(r.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write item file: %v", err)
	}
	return nil
}

func (r *LocalItemRepository) ListItems(_ context.Context) ([]models.WishlistItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

// CreateItem prepends, keeping the blob in newest-first order.
func (r *LocalItemRepository) CreateItem(_ context.Context, item *models.WishlistItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load()
	if err != nil {
		return err
	}
	items = append([]models.WishlistItem{*item}, items...)
	return r.save(items)
}

func (r *LocalItemRepository) UpdateItem(_ context.Context, id string, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load()
	if err != nil {
		return err
	}

	for i := range items {
		if items[i].ID != id {
			continue
		}
		applyUpdates(&items[i], updates)
		return r.save(items)
	}
	return ErrItemNotFound
}

func (r *LocalItemRepository) DeleteItem(_ context.Context, id string) (*models.WishlistItem, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load()
	if err != nil {
		return nil, -1, err
	}

	for i := range items {
		if items[i].ID != id {
			continue
		}
		removed := items[i]
		items = append(items[:i], items[i+1:]...)
		if err := r.save(items); err != nil {
			return nil, -1, err
		}
		return &removed, i, nil
	}
	return nil, -1, ErrItemNotFound
}

// RestoreItem reinserts at the exact position the item was deleted from,
// clamped to the current list bounds.
func (r *LocalItemRepository) RestoreItem(_ context.Context, item *models.WishlistItem, index int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load()
	if err != nil {
		return err
	}

	if index < 0 {
		index = 0
	}
	if index > len(items) {
		index = len(items)
	}

	items = append(items, models.WishlistItem{})
	copy(items[index+1:], items[index:])
	items[index] = *item
	return r.save(items)
}

// Watch returns a channel that never fires: local files have no external
// writers in this single-tenant setup.
func (r *LocalItemRepository) Watch(_ context.Context) (<-chan struct{}, error) {
	return nil, nil
}

// applyUpdates mirrors the partial-update semantics of the remote backend
// onto the in-memory struct. Unknown keys are ignored.
func applyUpdates(item *models.WishlistItem, updates map[string]interface{}) {
	for key, value := range updates {
		str, _ := value.(string)
		switch key {
		case "name":
			item.Name = str
		case "url":
			item.URL = str
		case "note":
			item.Note = str
		case "category":
			item.Category = str
		case "subcategory":
			item.Subcategory = str
		case "price":
			item.Price = str
		case "image":
			item.Image = str
		}
	}
}
