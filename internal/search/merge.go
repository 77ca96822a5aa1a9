package search

import (
	"regexp"
	"strings"

	"linguahub-backend/internal/models"
)

// RedirectHostMarker identifies internal grounding-redirect URIs that
// must never appear in the final source list.
const RedirectHostMarker = "vertexaisearch.cloud.google.com"

// NormalizeURI strips the fragment portion of a URI so that links
// differing only by anchor dedupe to one entry.
func NormalizeURI(uri string) string {
	if i := strings.Index(uri, "#"); i >= 0 {
		return uri[:i]
	}
	return uri
}

// Dedupe folds an ordered source list into one with each normalized URI
// appearing exactly once. First occurrence wins, so callers control
// precedence by ordering their input. Entries with an empty URI or a URI
// containing the redirect-host marker are dropped.
func Dedupe(sources []models.Source) []models.Source {
	seen := make(map[string]bool, len(sources))
	out := make([]models.Source, 0, len(sources))
	for _, s := range sources {
		if s.URI == "" || strings.Contains(s.URI, RedirectHostMarker) {
			continue
		}
		key := NormalizeURI(s.URI)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

var markdownLinkPattern = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^)\s]+)\)`)

// ExtractMarkdownLinks pulls inline Markdown-link citations out of
// synthesized text, in order of appearance.
func ExtractMarkdownLinks(text string) []models.Source {
	matches := markdownLinkPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	sources := make([]models.Source, 0, len(matches))
	for _, m := range matches {
		sources = append(sources, models.Source{Title: m[1], URI: m[2]})
	}
	return sources
}
