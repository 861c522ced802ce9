package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Niffb/Livwishlist/internal/models"
	"github.com/Niffb/Livwishlist/internal/render"
	"github.com/Niffb/Livwishlist/internal/repository"
	"github.com/Niffb/Livwishlist/internal/services"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// ItemHandler handles HTTP requests for wishlist items.
type ItemHandler struct {
	Service *services.ItemService
}

// NewItemHandler creates a new instance of ItemHandler.
func NewItemHandler(service *services.ItemService) *ItemHandler {
	return &ItemHandler{Service: service}
}

// ListItemsHandler returns every item, newest first.
func (h *ItemHandler) ListItemsHandler(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.ListItems(r.Context())
	if err != nil {
		log.WithError(err).Error("Failed to fetch items")
		http.Error(w, "Failed to fetch items", http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []models.WishlistItem{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

// GetItemsViewHandler runs the filter/sort/group pipeline and returns the
// rendered card list for the requested tab.
func (h *ItemHandler) GetItemsViewHandler(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		category = render.CategoryAll
	}
	sortKey := r.URL.Query().Get("sort")
	if sortKey == "" {
		sortKey = render.SortNewest
	}

	items, err := h.Service.ListItems(r.Context())
	if err != nil {
		log.WithError(err).Error("Failed to fetch items for view")
		http.Error(w, "Failed to fetch items", http.StatusInternalServerError)
		return
	}

	view := render.BuildView(items, category, sortKey)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

// CreateItemHandler handles creation of a new item.
func (h *ItemHandler) CreateItemHandler(w http.ResponseWriter, r *http.Request) {
	var item models.WishlistItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	created, err := h.Service.CreateItem(r.Context(), &item)
	if err != nil {
		if errors.Is(err, services.ErrInvalidItem) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.WithError(err).Error("Failed to create item")
		http.Error(w, "Failed to create item", http.StatusInternalServerError)
		return
	}

	log.WithField("itemID", created.ID).Info("Item created")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(created)
}

// UpdateItemHandler applies a partial update to an item.
func (h *ItemHandler) UpdateItemHandler(w http.ResponseWriter, r *http.Request) {
	itemID := mux.Vars(r)["id"]

	var updates map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		http.Error(w, "Invalid update payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := h.Service.UpdateItem(r.Context(), itemID, updates); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidItem):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, repository.ErrItemNotFound):
			http.Error(w, "Item not found", http.StatusNotFound)
		default:
			log.WithError(err).Error("Failed to update item")
			http.Error(w, "Failed to update item", http.StatusInternalServerError)
		}
		return
	}

	log.WithField("itemID", itemID).Info("Item updated")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Item updated successfully"))
}

// DeleteItemHandler removes an item and returns it, so the client can offer
// undo while the window is open.
func (h *ItemHandler) DeleteItemHandler(w http.ResponseWriter, r *http.Request) {
	itemID := mux.Vars(r)["id"]

	removed, err := h.Service.DeleteItem(r.Context(), itemID)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			http.Error(w, "Item not found", http.StatusNotFound)
			return
		}
		log.WithError(err).Error("Failed to delete item")
		http.Error(w, "Failed to delete item", http.StatusInternalServerError)
		return
	}

	log.WithField("itemID", itemID).Info("Item deleted")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(removed)
}

// UndoDeleteHandler restores the most recently deleted item while the undo
// window is still open.
func (h *ItemHandler) UndoDeleteHandler(w http.ResponseWriter, r *http.Request) {
	restored, err := h.Service.UndoDelete(r.Context())
	if err != nil {
		if errors.Is(err, services.ErrNothingToUndo) {
			http.Error(w, "Nothing to undo", http.StatusNotFound)
			return
		}
		log.WithError(err).Error("Failed to undo delete")
		http.Error(w, "Failed to undo delete", http.StatusInternalServerError)
		return
	}

	log.WithField("itemID", restored.ID).Info("Item restored")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(restored)
}
