// Package search implements the per-source web search adapters and the
// merge step that folds their results into one deduplicated list.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"unicode/utf8"

	"linguahub-backend/internal/models"
)

const (
	defaultWikipediaBaseURL = "https://en.wikipedia.org/w/api.php"
	wikipediaExtractLimit   = 1500
)

// WikipediaClient queries the Wikipedia query API. No credential is
// needed.
type WikipediaClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewWikipediaClient creates a Wikipedia client. An empty baseURL uses
// the public English Wikipedia endpoint.
func NewWikipediaClient(baseURL string, client *http.Client) *WikipediaClient {
	if baseURL == "" {
		baseURL = defaultWikipediaBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &WikipediaClient{baseURL: baseURL, httpClient: client}
}

type wikipediaSearchResponse struct {
	Query struct {
		Search []struct {
			Title  string `json:"title"`
			PageID int    `json:"pageid"`
		} `json:"search"`
	} `json:"query"`
}

type wikipediaExtractResponse struct {
	Query struct {
		Pages map[string]struct {
			Title   string `json:"title"`
			Extract string `json:"extract"`
		} `json:"pages"`
	} `json:"query"`
}

// Lookup resolves a query to the best-matching page and fetches its
// plain-text introductory extract, truncated to 1500 characters. Returns
// nil (no error) when nothing matches.
func (c *WikipediaClient) Lookup(ctx context.Context, query string) (*models.Source, error) {
	// Step 1: search for a page id.
	searchURL := fmt.Sprintf("%s?action=query&list=search&format=json&srlimit=1&srsearch=%s",
		c.baseURL, url.QueryEscape(query))
	var searchResp wikipediaSearchResponse
	if err := c.getJSON(ctx, searchURL, &searchResp); err != nil {
		return nil, err
	}
	if len(searchResp.Query.Search) == 0 {
		return nil, nil
	}
	hit := searchResp.Query.Search[0]

	// Step 2: fetch the intro extract for that page.
	extractURL := fmt.Sprintf("%s?action=query&prop=extracts&exintro&explaintext&format=json&pageids=%d",
		c.baseURL, hit.PageID)
	var extractResp wikipediaExtractResponse
	if err := c.getJSON(ctx, extractURL, &extractResp); err != nil {
		return nil, err
	}

	page, ok := extractResp.Query.Pages[strconv.Itoa(hit.PageID)]
	if !ok || page.Extract == "" {
		return nil, nil
	}

	// Truncate by runes, not bytes; CJK extracts would otherwise be cut
	// to a fraction of the limit or sliced mid-rune.
	extract := page.Extract
	if utf8.RuneCountInString(extract) > wikipediaExtractLimit {
		extract = string([]rune(extract)[:wikipediaExtractLimit])
	}

	return &models.Source{
		Title:   page.Title,
		URI:     fmt.Sprintf("https://en.wikipedia.org/?curid=%d", hit.PageID),
		Snippet: extract,
	}, nil
}

func (c *WikipediaClient) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("wikipedia request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("wikipedia returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse wikipedia response: %w", err)
	}
	return nil
}
