package services

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"github.com/Niffb/Livwishlist/internal/metadata"
	"github.com/Niffb/Livwishlist/internal/normalize"
	"github.com/sirupsen/logrus"
)

// ErrFetchInProgress is returned while another extraction is still running;
// the same guard the UI applies by disabling the fetch button.
var ErrFetchInProgress = errors.New("a fetch is already in progress")

// Preview sources.
const (
	SourceMetadata = "metadata" // extraction succeeded
	SourceSlug     = "slug"     // site blocked extraction, name parsed from URL
	SourceError    = "error"    // transport failure, name parsed from URL
)

// Preview is what the form shows before the user commits an item.
type Preview struct {
	Name  string `json:"name,omitempty"`
	Price string `json:"price,omitempty"`
	Image string `json:"image,omitempty"`

	PreviewTitle  string `json:"previewTitle"`
	PreviewDetail string `json:"previewDetail"`
	Source        string `json:"source"`
}

// FetchService runs the extraction pipeline: one metadata lookup, heuristic
// cleanup, and the URL-slug fallback when the lookup yields nothing.
type FetchService struct {
	client   *metadata.Client
	inFlight atomic.Bool
}

func NewFetchService(client *metadata.Client) *FetchService {
	return &FetchService{client: client}
}

// Fetch builds a form-fill preview for the given URL. It never fails on
// extraction problems; those degrade to the slug fallback with
// source-specific user copy. Only a concurrent call is an error.
func (s *FetchService) Fetch(ctx context.Context, target string) (*Preview, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrFetchInProgress
	}
	defer s.inFlight.Store(false)

	data, err := s.client.Fetch(ctx, target)
	if err != nil {
		logrus.WithError(err).WithField("url", target).Info("Metadata extraction fell back to URL parsing")
		return slugPreview(target, err), nil
	}

	name := normalize.NameFromMetadata(data.Title, data.Description, target)
	image := normalize.BestImage(imageCandidates(data), target)
	price := DetectPrice(data)

	preview := &Preview{
		Name:         name,
		Price:        price,
		Image:        image,
		PreviewTitle: name,
		Source:       SourceMetadata,
	}
	if preview.PreviewTitle == "" {
		preview.PreviewTitle = "Product detected"
	}

	switch {
	case price != "":
		preview.PreviewDetail = "Price: " + price
	case data.Description != "":
		preview.PreviewDetail = truncate(data.Description, 100)
	default:
		preview.PreviewDetail = target
	}

	return preview, nil
}

// slugPreview is the no-data path. The copy distinguishes a site that blocks
// extraction from a plain network failure; both ask for manual entry.
func slugPreview(target string, cause error) *Preview {
	name := normalize.NameFromURL(target)
	preview := &Preview{Name: name, PreviewTitle: name}

	if errors.Is(cause, metadata.ErrExtractionBlocked) {
		preview.Source = SourceSlug
		if preview.PreviewTitle == "" {
			preview.PreviewTitle = "Could not auto-fetch"
		}
		preview.PreviewDetail = "This site blocks scrapers. The name was extracted from the URL, please verify it and fill in the rest manually."
	} else {
		preview.Source = SourceError
		if preview.PreviewTitle == "" {
			preview.PreviewTitle = "Fetch failed"
		}
		preview.PreviewDetail = "Please check the link or fill in manually."
	}
	return preview
}

// imageCandidates orders the possible images by how likely they are to show
// the product: primary image, gallery, logo, then the screenshot.
func imageCandidates(data *metadata.Metadata) []string {
	candidates := []string{data.Image.URL}
	for _, img := range data.Images {
		candidates = append(candidates, img.URL)
	}
	return append(candidates, data.Logo.URL, data.Screenshot.URL)
}

// DetectPrice prefers the structured price field, formatting bare numbers as
// currency; otherwise it scans all the free text for a currency pattern.
func DetectPrice(data *metadata.Metadata) string {
	if data.Price.Raw != "" {
		if data.Price.Numeric {
			return "£" + data.Price.Raw
		}
		return data.Price.Raw
	}

	searchStr := strings.Join([]string{
		data.Description,
		data.Title,
		data.Publisher,
		string(data.Text),
	}, " | ")
	return normalize.ScanPrice(searchStr)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
