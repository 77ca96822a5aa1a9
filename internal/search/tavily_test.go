package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTavilySearch_MissingKeySkips(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := NewTavilyClient(server.URL, server.Client())
	sources, err := client.Search(context.Background(), "", "query")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if sources != nil {
		t.Errorf("expected nil sources, got %v", sources)
	}
	if called {
		t.Error("no request should be made without an API key")
	}
}

func TestTavilySearch_KeyInBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		var req tavilyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.APIKey != "tv-key" || req.Query != "rust vs go" || req.MaxResults != tavilyMaxResults {
			t.Errorf("unexpected request: %+v", req)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"title":"Comparison","url":"https://example.com/cmp","content":"snippet"}]}`))
	}))
	defer server.Close()

	client := NewTavilyClient(server.URL, server.Client())
	sources, err := client.Search(context.Background(), "tv-key", "rust vs go")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(sources) != 1 {
		t.Fatalf("expected 1 source, got %d", len(sources))
	}
	if sources[0].Title != "Comparison" || sources[0].URI != "https://example.com/cmp" || sources[0].Snippet != "snippet" {
		t.Errorf("unexpected source: %+v", sources[0])
	}
}

func TestTavilySearch_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewTavilyClient(server.URL, server.Client())
	if _, err := client.Search(context.Background(), "tv-key", "query"); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}
