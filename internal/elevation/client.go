// Package elevation looks up terrain elevation for arbitrary coordinates
// through the Open-Elevation public API. Callers treat failures as soft:
// a relocated route falls back to its original base elevation when the
// lookup is unavailable.
package elevation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.open-elevation.com"

// Client queries an Open-Elevation compatible endpoint.
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient returns a client against the public Open-Elevation API.
func NewClient() *Client {
	return NewClientWithURL(defaultBaseURL)
}

// NewClientWithURL returns a client against a custom endpoint, used by tests
// and self-hosted deployments.
func NewClientWithURL(baseURL string) *Client {
	return &Client{
		http:    &http.Client{Timeout: 5 * time.Second},
		baseURL: baseURL,
	}
}

type lookupResponse struct {
	Results []struct {
		Elevation float64 `json:"elevation"`
	} `json:"results"`
}

// Lookup returns the terrain elevation in meters at the given coordinate.
func (c *Client) Lookup(ctx context.Context, lat, lon float64) (float64, error) {
	url := fmt.Sprintf("%s/api/v1/lookup?locations=%.6f,%.6f", c.baseURL, lat, lon)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build elevation request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("elevation lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("elevation lookup returned status %d", resp.StatusCode)
	}

	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("failed to decode elevation response: %w", err)
	}
	if len(body.Results) == 0 {
		return 0, fmt.Errorf("elevation response has no results")
	}
	return body.Results[0].Elevation, nil
}
