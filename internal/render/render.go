// Package render is the pure view pipeline: filter by category, sort by the
// active key, group clothes by subcategory, and emit one row per card
// or header. It never touches storage; state goes in, a view model comes out.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Niffb/Livwishlist/internal/models"
	"github.com/Niffb/Livwishlist/internal/normalize"
)

// CategoryAll passes every item through the filter.
const CategoryAll = "all"

// Sort keys accepted by the sort selector.
const (
	SortNewest    = "newest"
	SortOldest    = "oldest"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortName      = "name"
)

// UncategorisedHeader labels the trailing bucket for clothes without a
// subcategory.
const UncategorisedHeader = "Uncategorised"

// Card is one rendered wishlist entry.
type Card struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	CategoryLabel    string `json:"categoryLabel"`
	SubcategoryLabel string `json:"subcategoryLabel,omitempty"`
	Price            string `json:"price,omitempty"`
	Note             string `json:"note,omitempty"`
	URL              string `json:"url"`
	DisplayURL       string `json:"displayUrl"`
	Image            string `json:"image,omitempty"`
	PlaceholderGlyph string `json:"placeholderGlyph"`
}

// Row is either a group header or a card, in final display order.
type Row struct {
	Header string `json:"header,omitempty"`
	Card   *Card  `json:"card,omitempty"`
}

// View is the complete render result for one filter/sort combination.
type View struct {
	Rows         []Row  `json:"rows"`
	Empty        bool   `json:"empty"`
	EmptyMessage string `json:"emptyMessage,omitempty"`
}

// Filter keeps items in the active category, or everything for "all",
// preserving relative order.
func Filter(items []models.WishlistItem, category string) []models.WishlistItem {
	if category == CategoryAll || category == "" {
		return append([]models.WishlistItem(nil), items...)
	}

	filtered := []models.WishlistItem{}
	for _, item := range items {
		if item.Category == category {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// Sort orders a copy of the items by the given key. Missing timestamps sort
// as oldest; unparseable prices sort as infinitely expensive.
func Sort(items []models.WishlistItem, key string) []models.WishlistItem {
	sorted := append([]models.WishlistItem(nil), items...)

	switch key {
	case SortOldest:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		})
	case SortPriceLow:
		sort.SliceStable(sorted, func(i, j int) bool {
			return normalize.ParsePrice(sorted[i].Price) < normalize.ParsePrice(sorted[j].Price)
		})
	case SortPriceHigh:
		sort.SliceStable(sorted, func(i, j int) bool {
			return normalize.ParsePrice(sorted[i].Price) > normalize.ParsePrice(sorted[j].Price)
		})
	case SortName:
		sort.SliceStable(sorted, func(i, j int) bool {
			return strings.Compare(sorted[i].Name, sorted[j].Name) < 0
		})
	case SortNewest:
		fallthrough
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		})
	}

	return sorted
}

// BuildView runs the full pipeline and produces the row list, grouping by
// subcategory when the clothes category is active.
func BuildView(items []models.WishlistItem, category, sortKey string) View {
	visible := Sort(Filter(items, category), sortKey)

	if len(visible) == 0 {
		return View{
			Rows:         []Row{},
			Empty:        true,
			EmptyMessage: emptyMessage(category),
		}
	}

	if category == models.CategoryClothes {
		return View{Rows: groupBySubcategory(visible)}
	}

	rows := make([]Row, 0, len(visible))
	for i := range visible {
		rows = append(rows, Row{Card: buildCard(&visible[i])})
	}
	return View{Rows: rows}
}

// groupBySubcategory clusters items under headers: known subcategories in
// canonical order, unknown ones after in first-seen order, and an
// Uncategorised bucket last.
func groupBySubcategory(items []models.WishlistItem) []Row {
	groups := map[string][]models.WishlistItem{}
	var ungrouped []models.WishlistItem
	var firstSeen []string

	for _, item := range items {
		sub := item.Subcategory
		if sub == "" {
			ungrouped = append(ungrouped, item)
			continue
		}
		if _, ok := groups[sub]; !ok {
			firstSeen = append(firstSeen, sub)
		}
		groups[sub] = append(groups[sub], item)
	}

	var orderedKeys []string
	for _, key := range models.SubcategoryOrder {
		if _, ok := groups[key]; ok {
			orderedKeys = append(orderedKeys, key)
		}
	}
	for _, key := range firstSeen {
		if !models.IsKnownSubcategory(key) {
			orderedKeys = append(orderedKeys, key)
		}
	}

	var rows []Row
	for _, key := range orderedKeys {
		rows = append(rows, Row{Header: models.SubcategoryLabel(key)})
		for i := range groups[key] {
			rows = append(rows, Row{Card: buildCard(&groups[key][i])})
		}
	}

	if len(ungrouped) > 0 {
		// The header is only worth showing when there are labelled groups
		// above it.
		if len(orderedKeys) > 0 {
			rows = append(rows, Row{Header: UncategorisedHeader})
		}
		for i := range ungrouped {
			rows = append(rows, Row{Card: buildCard(&ungrouped[i])})
		}
	}

	return rows
}

func buildCard(item *models.WishlistItem) *Card {
	card := &Card{
		ID:               item.ID,
		Name:             item.Name,
		CategoryLabel:    models.CategoryLabel(item.Category),
		Price:            item.Price,
		Note:             item.Note,
		URL:              item.URL,
		DisplayURL:       normalize.DisplayURL(item.URL),
		Image:            item.Image,
		PlaceholderGlyph: models.CategoryGlyph(item.Category),
	}
	if item.Subcategory != "" && models.IsKnownSubcategory(item.Subcategory) {
		card.SubcategoryLabel = models.SubcategoryLabel(item.Subcategory)
	}
	return card
}

func emptyMessage(category string) string {
	if category == CategoryAll || category == "" {
		return "No items yet"
	}
	return fmt.Sprintf("No %s items", models.CategoryLabel(category))
}
