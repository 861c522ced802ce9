package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/Niffb/Livwishlist/internal/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFetchService(handler http.HandlerFunc) (*FetchService, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := metadata.NewClient(server.URL, 5*time.Second)
	return NewFetchService(client), server
}

func TestFetchBuildsPreviewFromMetadata(t *testing.T) {
	svc, server := newFetchService(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"status": "success",
			"data": {
				"title": "Wool Jumper | Example Store",
				"description": "A lovely jumper.",
				"image": "https://cdn.example.com/jumper.jpg",
				"price": 45.99
			}
		}`))
	})
	defer server.Close()

	preview, err := svc.Fetch(context.Background(), "https://example.com/jumpers/wool")
	require.NoError(t, err)

	assert.Equal(t, SourceMetadata, preview.Source)
	assert.Equal(t, "Wool Jumper", preview.Name)
	assert.Equal(t, "£45.99", preview.Price)
	assert.Equal(t, "https://cdn.example.com/jumper.jpg", preview.Image)
	assert.Equal(t, "Wool Jumper", preview.PreviewTitle)
	assert.Equal(t, "Price: £45.99", preview.PreviewDetail)
}

func TestFetchScansTextForPrice(t *testing.T) {
	svc, server := newFetchService(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"status": "success",
			"data": {
				"title": "Silk Scarf",
				"description": "Gorgeous scarf, now only £45.99 in the sale."
			}
		}`))
	})
	defer server.Close()

	preview, err := svc.Fetch(context.Background(), "https://example.com/scarf")
	require.NoError(t, err)
	assert.Equal(t, "£45.99", preview.Price)
}

func TestFetchBlockedFallsBackToSlug(t *testing.T) {
	svc, server := newFetchService(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "fail"}`))
	})
	defer server.Close()

	preview, err := svc.Fetch(context.Background(), "https://shop.example.com/jumpers/blue-wool-123")
	require.NoError(t, err)

	assert.Equal(t, SourceSlug, preview.Source)
	assert.Equal(t, "Blue Wool 123", preview.Name)
	assert.Equal(t, "Blue Wool 123", preview.PreviewTitle)
	assert.Contains(t, preview.PreviewDetail, "blocks scrapers")
	assert.Empty(t, preview.Image)
}

func TestFetchTransportErrorFallsBackWithDifferentCopy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()
	svc := NewFetchService(metadata.NewClient(server.URL, time.Second))

	preview, err := svc.Fetch(context.Background(), "https://shop.example.com/jumpers/blue-wool-123")
	require.NoError(t, err)

	assert.Equal(t, SourceError, preview.Source)
	assert.Equal(t, "Blue Wool 123", preview.Name)
	assert.NotContains(t, preview.PreviewDetail, "blocks scrapers")
	assert.Contains(t, preview.PreviewDetail, "check the link")
}

func TestFetchBlockedWithUnparseableURL(t *testing.T) {
	svc, server := newFetchService(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "fail"}`))
	})
	defer server.Close()

	preview, err := svc.Fetch(context.Background(), "https://example.com/12345")
	require.NoError(t, err)

	assert.Empty(t, preview.Name)
	assert.Equal(t, "Could not auto-fetch", preview.PreviewTitle)
}

func TestFetchRejectsConcurrentCalls(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	svc, server := newFetchService(func(w http.ResponseWriter, r *http.Request) {
		started <- struct{}{}
		<-release
		w.Write([]byte(`{"status": "fail"}`))
	})
	defer server.Close()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := svc.Fetch(context.Background(), "https://example.com/slow")
		assert.NoError(t, err)
	}()

	// The first call is inside the lookup and holds the guard.
	<-started

	_, err := svc.Fetch(context.Background(), "https://example.com/second")
	assert.ErrorIs(t, err, ErrFetchInProgress)

	close(release)
	wg.Wait()
}
