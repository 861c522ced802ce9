package repository

import (
	"testing"
	"time"

	"github.com/Niffb/Livwishlist/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestDocumentMappingDropsSubcategory(t *testing.T) {
	item := models.WishlistItem{
		ID:          "abc",
		Name:        "Blue Jumper",
		URL:         "https://example.com/jumper",
		Note:        "size M",
		Category:    models.CategoryClothes,
		Subcategory: "jumpers",
		Price:       "£45.99",
		Image:       "https://cdn.example.com/jumper.jpg",
		CreatedAt:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	doc := toDocument(&item)
	back := fromDocument(doc)

	// The remote table has no subcategory column; everything else survives
	// the round trip.
	assert.Empty(t, back.Subcategory)
	back.Subcategory = item.Subcategory
	assert.Equal(t, item, back)
}

func TestTranslateUpdates(t *testing.T) {
	now := time.Now()
	translated := translateUpdates(map[string]interface{}{
		"name":        "New Name",
		"subcategory": "jumpers",
		"createdAt":   now,
		"id":          "evil-rewrite",
		"price":       "£9",
	})

	assert.Equal(t, "New Name", translated["name"])
	assert.Equal(t, "£9", translated["price"])
	assert.Equal(t, now, translated["created_at"])
	assert.NotContains(t, translated, "createdAt")
	assert.NotContains(t, translated, "subcategory")
	assert.NotContains(t, translated, "id")
	assert.NotContains(t, translated, "_id")
}
