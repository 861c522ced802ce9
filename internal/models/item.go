package models

import (
	"fmt"
	"time"
)

// WishlistItem is a single saved product link with its display metadata.
type WishlistItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	Note        string    `json:"note,omitempty"`
	Category    string    `json:"category"`
	Subcategory string    `json:"subcategory,omitempty"`
	Price       string    `json:"price,omitempty"` // free-form display text, e.g. "£45.99"
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Normalize clears fields that only apply under certain categories.
// Subcategories are only meaningful for clothes.
func (i *WishlistItem) Normalize() {
	if i.Category != CategoryClothes {
		i.Subcategory = ""
	}
}

// Validate checks the invariants required before an item may be stored.
func (i *WishlistItem) Validate() error {
	if i.Name == "" {
		return fmt.Errorf("item must have a name")
	}
	if i.URL == "" {
		return fmt.Errorf("item must have a url")
	}
	if !IsValidCategory(i.Category) {
		return fmt.Errorf("unknown category %q", i.Category)
	}
	return nil
}
