package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"linguahub-backend/internal/models"
)

const (
	defaultTavilyBaseURL = "https://api.tavily.com"
	tavilyMaxResults     = 5
)

// TavilyClient queries the Tavily search API. The API key travels in the
// request body.
type TavilyClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewTavilyClient creates a Tavily client. An empty baseURL uses the
// public endpoint.
func NewTavilyClient(baseURL string, client *http.Client) *TavilyClient {
	if baseURL == "" {
		baseURL = defaultTavilyBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &TavilyClient{baseURL: baseURL, httpClient: client}
}

type tavilyRequest struct {
	APIKey     string `json:"api_key"`
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type tavilyResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

// Search returns canonical sources for the query. A missing API key is
// not an error: the source is simply skipped, returning no results.
func (c *TavilyClient) Search(ctx context.Context, apiKey, query string) ([]models.Source, error) {
	if apiKey == "" {
		return nil, nil
	}

	body, err := json.Marshal(tavilyRequest{APIKey: apiKey, Query: query, MaxResults: tavilyMaxResults})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tavily request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tavily request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tavily returned status %d", resp.StatusCode)
	}

	var parsed tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to parse tavily response: %w", err)
	}

	sources := make([]models.Source, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		sources = append(sources, models.Source{Title: r.Title, URI: r.URL, Snippet: r.Content})
	}
	return sources, nil
}
