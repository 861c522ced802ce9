package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Niffb/Livwishlist/internal/models"
	"github.com/Niffb/Livwishlist/internal/repository"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	// ErrInvalidItem is returned when a required field is missing; the form
	// simply does not proceed.
	ErrInvalidItem = errors.New("invalid item")

	// ErrNothingToUndo is returned when the undo window has expired or
	// another deletion replaced the buffered item.
	ErrNothingToUndo = errors.New("nothing to undo")
)

// ItemService owns wishlist CRUD on top of whichever repository backend was
// selected at startup, plus the one-slot undo buffer for deletions.
type ItemService struct {
	repo       repository.ItemRepository
	undoWindow time.Duration

	mu          sync.Mutex
	lastDeleted *deletedItem
}

type deletedItem struct {
	item  models.WishlistItem
	index int
	timer *time.Timer
}

func NewItemService(repo repository.ItemRepository, undoWindow time.Duration) *ItemService {
	return &ItemService{
		repo:       repo,
		undoWindow: undoWindow,
	}
}

// ListItems returns all items, newest first.
func (s *ItemService) ListItems(ctx context.Context) ([]models.WishlistItem, error) {
	return s.repo.ListItems(ctx)
}

// CreateItem assigns identity and creation time, validates and persists.
func (s *ItemService) CreateItem(ctx context.Context, item *models.WishlistItem) (*models.WishlistItem, error) {
	item.ID = uuid.NewString()
	item.CreatedAt = time.Now()
	item.Normalize()

	if err := item.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidItem, err)
	}

	if err := s.repo.CreateItem(ctx, item); err != nil {
		logrus.WithError(err).Error("Failed to create item")
		return nil, err
	}
	return item, nil
}

// UpdateItem applies a partial update. Identity and creation time are never
// rewritten, and the subcategory is cleared when the category moves away
// from clothes.
func (s *ItemService) UpdateItem(ctx context.Context, id string, updates map[string]interface{}) error {
	delete(updates, "id")
	delete(updates, "createdAt")

	if name, ok := updates["name"].(string); ok && name == "" {
		return ErrInvalidItem
	}
	if rawURL, ok := updates["url"].(string); ok && rawURL == "" {
		return ErrInvalidItem
	}
	if category, ok := updates["category"].(string); ok {
		if !models.IsValidCategory(category) {
			return ErrInvalidItem
		}
		if category != models.CategoryClothes {
			updates["subcategory"] = ""
		}
	}

	if err := s.repo.UpdateItem(ctx, id, updates); err != nil {
		logrus.WithError(err).Error("Failed to update item")
		return err
	}
	return nil
}

// DeleteItem removes an item and keeps it in the undo buffer until the
// window expires or another deletion takes the slot.
func (s *ItemService) DeleteItem(ctx context.Context, id string) (*models.WishlistItem, error) {
	removed, index, err := s.repo.DeleteItem(ctx, id)
	if err != nil {
		logrus.WithError(err).Error("Failed to delete item")
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastDeleted != nil {
		s.lastDeleted.timer.Stop()
	}
	buffered := &deletedItem{item: *removed, index: index}
	buffered.timer = time.AfterFunc(s.undoWindow, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.lastDeleted == buffered {
			s.lastDeleted = nil
		}
	})
	s.lastDeleted = buffered

	return removed, nil
}

// UndoDelete restores the most recently deleted item. The local backend puts
// it back at its original position; the remote backend appends, ordering
// there is by creation time anyway.
func (s *ItemService) UndoDelete(ctx context.Context) (*models.WishlistItem, error) {
	s.mu.Lock()
	buffered := s.lastDeleted
	if buffered != nil {
		buffered.timer.Stop()
		s.lastDeleted = nil
	}
	s.mu.Unlock()

	if buffered == nil {
		return nil, ErrNothingToUndo
	}

	if err := s.repo.RestoreItem(ctx, &buffered.item, buffered.index); err != nil {
		logrus.WithError(err).Error("Failed to restore item")
		return nil, err
	}
	return &buffered.item, nil
}

// Watch exposes the backend's change feed.
func (s *ItemService) Watch(ctx context.Context) (<-chan struct{}, error) {
	return s.repo.Watch(ctx)
}
