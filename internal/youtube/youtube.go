// Package youtube is a thin client for the YouTube Data API v3 search
// endpoint. The API key stays server-side; callers only ever see result
// items.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

const defaultBaseURL = "https://www.googleapis.com/youtube/v3"

// Music category in the YouTube Data API.
const musicCategoryID = "10"

const maxResults = 10

// Thumbnail represents a thumbnail image for a video.
type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// SearchItem represents one video result as returned by the search endpoint.
type SearchItem struct {
	ID struct {
		Kind    string `json:"kind"`
		VideoID string `json:"videoId"`
	} `json:"id"`
	Snippet struct {
		Title        string               `json:"title"`
		Description  string               `json:"description"`
		ChannelTitle string               `json:"channelTitle"`
		PublishedAt  string               `json:"publishedAt"`
		Thumbnails   map[string]Thumbnail `json:"thumbnails"`
	} `json:"snippet"`
}

// Client calls the YouTube Data API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client using the given API key. An empty key yields a
// client whose Search always fails; the caller decides how to surface that.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
	}
}

// NewClientWithBaseURL is NewClient pointed at a different API host, for
// tests.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = baseURL
	return c
}

// Search queries the music video category for query, returning at most ten
// results.
func (c *Client) Search(ctx context.Context, query string) ([]SearchItem, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("youtube API key not configured")
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("videoCategoryId", musicCategoryID)
	params.Set("maxResults", fmt.Sprintf("%d", maxResults))
	params.Set("q", query)
	params.Set("key", c.apiKey)

	apiURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error.Message != "" {
			return nil, fmt.Errorf("youtube API error (status %d): %s", resp.StatusCode, errResp.Error.Message)
		}
		return nil, fmt.Errorf("youtube API error: status %d", resp.StatusCode)
	}

	var result struct {
		Items []SearchItem `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return result.Items, nil
}
