package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

var (
	// ErrExtractionBlocked means the API answered but could not extract
	// anything, typically because the site blocks scrapers.
	ErrExtractionBlocked = errors.New("site blocked metadata extraction")

	// ErrFetchFailed means the request itself failed (network, timeout,
	// malformed response).
	ErrFetchFailed = errors.New("metadata fetch failed")
)

// Client talks to a Microlink-style metadata extraction API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a metadata client for the given API base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type envelope struct {
	Status string    `json:"status"`
	Data   *Metadata `json:"data"`
}

// Fetch performs one extraction lookup for the target URL. A graceful API
// failure returns ErrExtractionBlocked, a transport failure returns an error
// wrapping ErrFetchFailed; callers fall back to slug parsing either way.
func (c *Client) Fetch(ctx context.Context, target string) (*Metadata, error) {
	endpoint := fmt.Sprintf("%s?url=%s&palette=true", c.baseURL, url.QueryEscape(target))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	if env.Status != "success" || env.Data.IsEmpty() {
		return nil, ErrExtractionBlocked
	}
	return env.Data, nil
}
