package metadata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "https://shop.example.com/jumper", r.URL.Query().Get("url"))
		w.Write([]byte(`{
			"status": "success",
			"data": {
				"title": "Wool Jumper | Example Store",
				"description": "A lovely jumper. Costs £45.99 right now.",
				"publisher": "Example Store",
				"image": {"url": "https://cdn.example.com/jumper.jpg"},
				"images": ["https://cdn.example.com/alt.jpg"],
				"price": 45.99
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	data, err := client.Fetch(context.Background(), "https://shop.example.com/jumper")
	require.NoError(t, err)

	assert.Equal(t, "Wool Jumper | Example Store", data.Title)
	assert.Equal(t, "https://cdn.example.com/jumper.jpg", data.Image.URL)
	require.Len(t, data.Images, 1)
	assert.Equal(t, "https://cdn.example.com/alt.jpg", data.Images[0].URL)
	assert.True(t, data.Price.Numeric)
	assert.Equal(t, "45.99", data.Price.Raw)
}

func TestFetchStringPrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "success", "data": {"title": "Thing", "price": "£12.50"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	data, err := client.Fetch(context.Background(), "https://example.com/thing")
	require.NoError(t, err)

	assert.False(t, data.Price.Numeric)
	assert.Equal(t, "£12.50", data.Price.Raw)
}

func TestFetchBlockedExtraction(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"explicit failure status", `{"status": "fail"}`},
		{"success with empty payload", `{"status": "success", "data": {}}`},
		{"success with null payload", `{"status": "success", "data": null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL, 5*time.Second)
			_, err := client.Fetch(context.Background(), "https://example.com")
			assert.ErrorIs(t, err, ErrExtractionBlocked)
		})
	}
}

func TestFetchTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := NewClient(server.URL, time.Second)
	_, err := client.Fetch(context.Background(), "https://example.com")
	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.False(t, errors.Is(err, ErrExtractionBlocked))
}

func TestFetchMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.Fetch(context.Background(), "https://example.com")
	assert.ErrorIs(t, err, ErrFetchFailed)
}
