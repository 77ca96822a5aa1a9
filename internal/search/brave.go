package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"linguahub-backend/internal/models"
)

const (
	defaultBraveBaseURL = "https://api.search.brave.com"
	braveMaxResults     = 5
)

// BraveClient queries the Brave web search API. The API key travels in
// the X-Subscription-Token header.
type BraveClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewBraveClient creates a Brave client. An empty baseURL uses the
// public endpoint.
func NewBraveClient(baseURL string, client *http.Client) *BraveClient {
	if baseURL == "" {
		baseURL = defaultBraveBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &BraveClient{baseURL: baseURL, httpClient: client}
}

type braveResponse struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
		} `json:"results"`
	} `json:"web"`
}

// Search returns canonical sources for the query. A missing API key is
// not an error: the source is simply skipped, returning no results.
func (c *BraveClient) Search(ctx context.Context, apiKey, query string) ([]models.Source, error) {
	if apiKey == "" {
		return nil, nil
	}

	endpoint := fmt.Sprintf("%s/res/v1/web/search?q=%s&count=%d", c.baseURL, url.QueryEscape(query), braveMaxResults)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("brave request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("brave returned status %d", resp.StatusCode)
	}

	var parsed braveResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to parse brave response: %w", err)
	}

	sources := make([]models.Source, 0, len(parsed.Web.Results))
	for _, r := range parsed.Web.Results {
		sources = append(sources, models.Source{Title: r.Title, URI: r.URL, Snippet: r.Description})
	}
	return sources, nil
}
