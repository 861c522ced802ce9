package models

// The fixed category taxonomy. Items always belong to exactly one category;
// the subcategory axis only exists under clothes.
const (
	CategoryClothes    = "clothes"
	CategoryJewellery  = "jewellery"
	CategoryShoes      = "shoes"
	CategoryBags       = "bags"
	CategoryCosmetics  = "cosmetics"
	CategoryStationery = "stationery"
	CategoryHome       = "home"
	CategoryBooks      = "books"
	CategoryMisc       = "misc"
)

// Categories lists every valid category in display order.
var Categories = []string{
	CategoryClothes,
	CategoryJewellery,
	CategoryShoes,
	CategoryBags,
	CategoryCosmetics,
	CategoryStationery,
	CategoryHome,
	CategoryBooks,
	CategoryMisc,
}

var categoryLabels = map[string]string{
	CategoryClothes:    "Clothes",
	CategoryJewellery:  "Jewellery",
	CategoryShoes:      "Shoes",
	CategoryBags:       "Bags",
	CategoryCosmetics:  "Cosmetics",
	CategoryStationery: "Stationery",
	CategoryHome:       "Home",
	CategoryBooks:      "Books",
	CategoryMisc:       "Miscellaneous",
}

// Placeholder glyph shown on a card when the item has no image.
var categoryGlyphs = map[string]string{
	CategoryClothes:    "👕",
	CategoryJewellery:  "💎",
	CategoryShoes:      "👟",
	CategoryBags:       "👜",
	CategoryCosmetics:  "💄",
	CategoryStationery: "✍️",
	CategoryHome:       "🏠",
	CategoryBooks:      "📖",
	CategoryMisc:       "✦",
}

// SubcategoryOrder is the canonical display order for known clothes
// subcategories. Unknown subcategories render after these, in first-seen
// order, with uncategorised items last.
var SubcategoryOrder = []string{
	"tops",
	"t-shirts",
	"jumpers",
	"hoodies",
	"jackets",
	"dresses",
	"skirts",
	"trousers",
	"shorts",
	"activewear",
	"swimwear",
	"underwear",
	"accessories",
	"other",
}

var subcategoryLabels = map[string]string{
	"tops":        "Tops",
	"t-shirts":    "T-Shirts",
	"jumpers":     "Jumpers & Knitwear",
	"hoodies":     "Hoodies & Sweatshirts",
	"jackets":     "Jackets & Coats",
	"dresses":     "Dresses",
	"skirts":      "Skirts",
	"trousers":    "Trousers & Jeans",
	"shorts":      "Shorts",
	"activewear":  "Activewear",
	"swimwear":    "Swimwear",
	"underwear":   "Underwear & Loungewear",
	"accessories": "Accessories",
	"other":       "Other",
}

// IsValidCategory reports whether the given value is part of the taxonomy.
func IsValidCategory(category string) bool {
	_, ok := categoryLabels[category]
	return ok
}

// CategoryLabel returns the display label for a category, falling back to
// the raw value for anything outside the taxonomy.
func CategoryLabel(category string) string {
	if label, ok := categoryLabels[category]; ok {
		return label
	}
	return category
}

// CategoryGlyph returns the placeholder glyph for a category.
func CategoryGlyph(category string) string {
	if glyph, ok := categoryGlyphs[category]; ok {
		return glyph
	}
	return "✦"
}

// SubcategoryLabel returns the display label for a subcategory, falling back
// to the raw value for unknown ones.
func SubcategoryLabel(subcategory string) string {
	if label, ok := subcategoryLabels[subcategory]; ok {
		return label
	}
	return subcategory
}

// IsKnownSubcategory reports whether the subcategory has a canonical label.
func IsKnownSubcategory(subcategory string) bool {
	_, ok := subcategoryLabels[subcategory]
	return ok
}
