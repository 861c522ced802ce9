// Package normalize turns raw scraped metadata into clean display values.
// Everything here is a pure function over strings; the heuristics mirror
// what real product pages get wrong most often (site-name suffixes, URL
// slugs instead of titles, prices buried in description text).
package normalize

import (
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Separators between a product title and a trailing site/brand marker,
// in the order they are tried.
var titleSeparators = []string{" | ", " - ", " – ", " — ", " : "}

// Path segments that never describe the product.
var slugStoplist = map[string]bool{
	"uk": true, "us": true, "listing": true, "product": true, "products": true,
	"item": true, "items": true, "shop": true, "dp": true, "p": true,
}

var (
	numericRe  = regexp.MustCompile(`^\d+$`)
	currencyRe = regexp.MustCompile(`(?i)(?:£|€|\$|USD|GBP|EUR|¥|CHF|AUD|CAD)\s?[\d,.]+(?:\.\d{2})?|[\d,.]+(?:\.\d{2})?\s?(?:£|€|\$|USD|GBP|EUR|¥|CHF|AUD|CAD)`)
	slugSepRe  = regexp.MustCompile(`[-_]+`)
	amountRe   = regexp.MustCompile(`\d+(?:\.\d+)?|\.\d+`)
)

// CleanTitle strips site-name markers from a raw page title, unpacks URL
// slugs and title-cases the result. It is idempotent: cleaning an already
// clean title returns it unchanged.
func CleanTitle(raw, sourceURL string) string {
	if raw == "" {
		return ""
	}

	cleaned := raw

	// 1. Drop a trailing segment that looks like a site or brand marker,
	// e.g. "Wool Jumper | Example Store".
	for _, sep := range titleSeparators {
		if !strings.Contains(cleaned, sep) {
			continue
		}
		parts := strings.Split(cleaned, sep)
		last := strings.ToLower(parts[len(parts)-1])
		squashed := strings.Join(strings.Fields(last), "")
		if strings.Contains(last, "store") || strings.Contains(last, "official") || strings.Contains(last, "website") ||
			(sourceURL != "" && squashed != "" && strings.Contains(strings.ToLower(sourceURL), squashed)) {
			cleaned = strings.Join(parts[:len(parts)-1], sep)
		}
	}

	cleaned = strings.TrimSpace(cleaned)

	// 2. Unpack slugs: either a path-like title or a hyphenated string with
	// no spaces. Keep the last path segment, drop ID-like tokens.
	if strings.Contains(cleaned, "/") || (strings.Contains(cleaned, "-") && !strings.Contains(cleaned, " ")) {
		segments := strings.Split(cleaned, "/")
		segment := segments[len(segments)-1]
		if segment == "" && len(segments) > 1 {
			segment = segments[len(segments)-2]
		}
		if segment == "" {
			segment = cleaned
		}

		var words []string
		for _, part := range strings.Split(segment, "-") {
			if numericRe.MatchString(part) || utf8.RuneCountInString(part) <= 1 {
				continue
			}
			words = append(words, part)
		}
		cleaned = strings.Join(words, " ")
	}

	// 3. Title-case.
	if cleaned != "" {
		cleaned = strings.TrimSpace(titleCase(cleaned))
	}

	return cleaned
}

// NameFromMetadata derives a display name from extracted metadata: the
// cleaned title when it is substantial, else the description's first
// sentence through the same pipeline, else empty.
func NameFromMetadata(title, description, sourceURL string) string {
	cleaned := CleanTitle(title, sourceURL)
	if utf8.RuneCountInString(cleaned) > 3 {
		return cleaned
	}

	if description != "" {
		sentence := strings.SplitN(description, ".", 2)[0]
		fromDesc := CleanTitle(sentence, sourceURL)
		if fromDesc != "" && utf8.RuneCountInString(fromDesc) < 80 {
			return fromDesc
		}
	}

	return ""
}

// NameFromURL parses a product name out of the URL path, as a last resort
// when extraction yields nothing. It picks the longest segment that is not
// an ID and not boilerplate, and humanizes it.
func NameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	best := ""
	for _, part := range strings.Split(u.Path, "/") {
		if part == "" || numericRe.MatchString(part) || slugStoplist[strings.ToLower(part)] {
			continue
		}
		if len(part) > len(best) {
			best = part
		}
	}
	if best == "" {
		return ""
	}

	humanized := slugSepRe.ReplaceAllString(best, " ")
	return strings.TrimSpace(capitalizeWords(humanized))
}

// ScanPrice finds the first currency-looking substring in free text and
// returns it verbatim, or "" when nothing matches. Symbol may sit before or
// after the amount.
func ScanPrice(text string) string {
	return currencyRe.FindString(text)
}

// BestImage picks the first usable image from an ordered candidate list,
// resolving relative URLs against the source page and skipping favicons.
func BestImage(candidates []string, sourceURL string) string {
	base, baseErr := url.Parse(sourceURL)

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		resolved := candidate
		if baseErr == nil {
			if ref, err := url.Parse(candidate); err == nil {
				resolved = base.ResolveReference(ref).String()
			}
		}
		if len(resolved) <= 4 || strings.Contains(strings.ToLower(resolved), "favicon") {
			continue
		}
		return resolved
	}
	return ""
}

// ParsePrice turns a free-form price string into a comparable number.
// Unparseable prices are +Inf so they sort after everything real.
func ParsePrice(price string) float64 {
	stripped := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, price)

	match := amountRe.FindString(stripped)
	if match == "" {
		return math.Inf(1)
	}

	val, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return math.Inf(1)
	}
	return val
}

// DisplayURL shortens a URL to its hostname for card display.
func DisplayURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return strings.TrimPrefix(u.Host, "www.")
}

// capitalizeWords uppercases the first letter of each word, leaving the rest
// of the word untouched. Slugs often contain deliberate casing (SKUs, brand
// names) worth preserving.
func capitalizeWords(s string) string {
	words := strings.Split(s, " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(word)
		words[i] = string(unicode.ToUpper(r)) + word[size:]
	}
	return strings.Join(words, " ")
}

func titleCase(s string) string {
	words := strings.Split(strings.ToLower(s), " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(word)
		words[i] = string(unicode.ToUpper(r)) + word[size:]
	}
	return strings.Join(words, " ")
}
