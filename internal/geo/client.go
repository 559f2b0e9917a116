// Package geo proxies reverse-geocoding lookups to a Nominatim-style
// service. Lookups are best-effort: any failure degrades to a formatted
// coordinate string instead of an error.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"carlink-backend/internal/logger"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Location is the resolved place for a coordinate pair.
type Location struct {
	DisplayName string  `json:"display_name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

type nominatimResponse struct {
	DisplayName string `json:"display_name"`
}

// Reverse resolves a coordinate pair to a display name. On any failure the
// fallback is "lat, lng" formatted to six decimals, never an error.
func (c *Client) Reverse(ctx context.Context, lat, lng float64) Location {
	loc := Location{
		DisplayName: fmt.Sprintf("%.6f, %.6f", lat, lng),
		Latitude:    lat,
		Longitude:   lng,
	}

	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", fmt.Sprintf("%f", lat))
	q.Set("lon", fmt.Sprintf("%f", lng))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return loc
	}
	req.Header.Set("User-Agent", "carlink-backend")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("reverse geocoding failed", "lat", lat, "lng", lng, "error", err)
		return loc
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("reverse geocoding returned non-200", "status", resp.StatusCode)
		return loc
	}

	var body nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		logger.Warn("failed to decode geocoding response", "error", err)
		return loc
	}
	if body.DisplayName != "" {
		loc.DisplayName = body.DisplayName
	}
	return loc
}
