package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"linguahub-backend/internal/models"
	"linguahub-backend/internal/providers"
	"linguahub-backend/internal/search"
	"linguahub-backend/internal/textutil"

	"golang.org/x/sync/errgroup"
)

// SearchService fans a query out to three independent sources, runs one
// grounded synthesis call over their combined context, and merges all
// citations into a deduplicated source list.
type SearchService struct {
	gemini    *providers.GeminiAdapter
	creds     *CredentialsService
	wikipedia *search.WikipediaClient
	tavily    *search.TavilyClient
	brave     *search.BraveClient
}

// NewSearchService creates a new SearchService.
func NewSearchService(gemini *providers.GeminiAdapter, creds *CredentialsService, wikipedia *search.WikipediaClient, tavily *search.TavilyClient, brave *search.BraveClient) *SearchService {
	return &SearchService{
		gemini:    gemini,
		creds:     creds,
		wikipedia: wikipedia,
		tavily:    tavily,
		brave:     brave,
	}
}

const synthesisCore = `You are a research assistant. Answer the user's query using current web information.
Cite your sources inline as Markdown links: [source name](url).
Be comprehensive but concise, and lead with the direct answer.`

// Search never fails from the caller's perspective: a failing source
// degrades to an empty contribution and a failing synthesis step yields
// a result whose text communicates the failure with an empty source
// list.
func (s *SearchService) Search(ctx context.Context, query, model string) models.SearchResponse {
	creds := s.creds.Snapshot()

	// Fan out to all three sources and wait for every one to settle;
	// the closures never return an error, so one slow or broken source
	// cannot abort the others.
	var (
		wikiSource    *models.Source
		tavilySources []models.Source
		braveSources  []models.Source
	)
	g, groupCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		src, err := s.wikipedia.Lookup(groupCtx, query)
		if err != nil {
			log.Printf("WARN [SearchService] Wikipedia lookup failed: %v", err)
			return nil
		}
		wikiSource = src
		return nil
	})
	g.Go(func() error {
		sources, err := s.tavily.Search(groupCtx, creds.TavilyAPIKey, query)
		if err != nil {
			log.Printf("WARN [SearchService] Tavily search failed: %v", err)
			return nil
		}
		tavilySources = sources
		return nil
	})
	g.Go(func() error {
		sources, err := s.brave.Search(groupCtx, creds.BraveAPIKey, query)
		if err != nil {
			log.Printf("WARN [SearchService] Brave search failed: %v", err)
			return nil
		}
		braveSources = sources
		return nil
	})
	_ = g.Wait()

	system := s.buildSynthesisInstruction(wikiSource, tavilySources, braveSources)

	grounded, err := s.gemini.GenerateGrounded(ctx, creds, model, system, query)
	if err != nil {
		log.Printf("WARN [SearchService] Synthesis failed: %v", err)
		return models.SearchResponse{
			Text:    fmt.Sprintf("Search failed: %v", err),
			Sources: []models.Source{},
		}
	}

	text := textutil.QuoteDiagramLabels(grounded.Text)

	// Source precedence: grounding citations, then inline Markdown
	// citations, with the Wikipedia hit prepended and the raw provider
	// results appended. Dedupe keeps the first occurrence.
	var merged []models.Source
	if wikiSource != nil {
		merged = append(merged, *wikiSource)
	}
	for _, c := range grounded.Citations {
		if c.URI != "" && c.Title != "" {
			merged = append(merged, c)
		}
	}
	merged = append(merged, search.ExtractMarkdownLinks(text)...)
	merged = append(merged, tavilySources...)
	merged = append(merged, braveSources...)

	return models.SearchResponse{
		Text:    text,
		Sources: search.Dedupe(merged),
	}
}

func (s *SearchService) buildSynthesisInstruction(wiki *models.Source, tavily, brave []models.Source) string {
	var b strings.Builder
	b.WriteString(synthesisCore)
	b.WriteString("\n\n")
	b.WriteString(providers.RenderingGuidelines)

	if wiki != nil && wiki.Snippet != "" {
		b.WriteString("\n\nEncyclopedia context:\n")
		b.WriteString(wiki.Title)
		b.WriteString("\n")
		b.WriteString(wiki.Snippet)
	}
	writeWebBlock := func(name string, sources []models.Source) {
		if len(sources) == 0 {
			return
		}
		b.WriteString("\n\n")
		b.WriteString(name)
		b.WriteString(" results:\n")
		for _, src := range sources {
			b.WriteString(fmt.Sprintf("- %s (%s): %s\n", src.Title, src.URI, src.Snippet))
		}
	}
	writeWebBlock("Tavily", tavily)
	writeWebBlock("Brave", brave)

	return b.String()
}

// SummarizePage issues one grounded call instructing the model to visit
// and summarize the URL. A failure returns a human-readable string, not
// an error.
func (s *SearchService) SummarizePage(ctx context.Context, url, model string) string {
	system := "You are a reading assistant. Visit the given URL and summarize its content as structured Markdown: a title line, key points as a bulleted list, and a short conclusion.\n\n" + providers.RenderingGuidelines

	grounded, err := s.gemini.GenerateGrounded(ctx, s.creds.Snapshot(), model, system, "Summarize this page: "+url)
	if err != nil {
		log.Printf("WARN [SearchService] Page summary failed for %s: %v", url, err)
		return fmt.Sprintf("Could not summarize the page: %v", err)
	}
	return textutil.QuoteDiagramLabels(grounded.Text)
}
