package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestBraveSearch_MissingKeySkips(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := NewBraveClient(server.URL, server.Client())
	sources, err := client.Search(context.Background(), "", "query")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if sources != nil || called {
		t.Error("no request should be made without an API key")
	}
}

func TestBraveSearch_TokenHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/res/v1/web/search" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("X-Subscription-Token"); got != "br-key" {
			t.Errorf("unexpected token header %q", got)
		}
		if got := r.URL.Query().Get("q"); got != "weather berlin" {
			t.Errorf("unexpected query %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"web":{"results":[{"title":"Weather","url":"https://example.com/w","description":"cloudy"}]}}`))
	}))
	defer server.Close()

	client := NewBraveClient(server.URL, server.Client())
	sources, err := client.Search(context.Background(), "br-key", "weather berlin")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(sources) != 1 {
		t.Fatalf("expected 1 source, got %d", len(sources))
	}
	if sources[0].Snippet != "cloudy" {
		t.Errorf("unexpected source: %+v", sources[0])
	}
}
