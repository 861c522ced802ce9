package repository

import (
	"context"
	"errors"

	"github.com/Niffb/Livwishlist/internal/models"
)

// ErrItemNotFound is returned when an operation targets an id that is not
// in the store.
var ErrItemNotFound = errors.New("item not found")

// ItemRepository is the storage boundary for wishlist items. Two backends
// implement it: a hosted Mongo collection and a local JSON file. The backend
// is chosen once at startup and all call sites depend only on this interface.
type ItemRepository interface {
	// ListItems returns every item, newest first.
	ListItems(ctx context.Context) ([]models.WishlistItem, error)

	// CreateItem persists a new item.
	CreateItem(ctx context.Context, item *models.WishlistItem) error

	// UpdateItem applies a partial field update to the item with the given id.
	UpdateItem(ctx context.Context, id string, updates map[string]interface{}) error

	// DeleteItem removes an item and returns it together with the position it
	// held, for undo. Backends without positional storage report -1.
	DeleteItem(ctx context.Context, id string) (*models.WishlistItem, int, error)

	// RestoreItem reinserts a previously deleted item. The index is honoured
	// only by backends with positional storage; others append.
	RestoreItem(ctx context.Context, item *models.WishlistItem, index int) error

	// Watch returns a channel that signals whenever the backing store changes
	// outside this process. Backends without change feeds return a channel
	// that never fires.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
