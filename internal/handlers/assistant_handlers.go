package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"linguahub-backend/internal/models"
	"linguahub-backend/internal/providers"
	"linguahub-backend/internal/services"
	"linguahub-backend/pkg/httputil"
)

// AssistantHandlers exposes the orchestration core: translate, chat,
// search and page summarization.
type AssistantHandlers struct {
	translateService *services.TranslateService
	chatService      *services.ChatService
	searchService    *services.SearchService
}

// NewAssistantHandlers creates a new AssistantHandlers instance.
func NewAssistantHandlers(translateService *services.TranslateService, chatService *services.ChatService, searchService *services.SearchService) *AssistantHandlers {
	return &AssistantHandlers{
		translateService: translateService,
		chatService:      chatService,
		searchService:    searchService,
	}
}

// HandleTranslate handles POST /v1/translate.
func (h *AssistantHandlers) HandleTranslate(w http.ResponseWriter, r *http.Request) {
	var req models.TranslateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Provider == "" {
		httputil.RespondError(w, http.StatusBadRequest, "provider is required")
		return
	}

	text, err := h.translateService.Translate(r.Context(), req)
	if err != nil {
		respondProviderError(w, r.Context(), err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, models.TranslateResponse{Text: text})
}

// HandleChat handles POST /v1/chat. An aborted client connection
// cancels the upstream call; the cancellation is not reported as a
// provider error.
func (h *AssistantHandlers) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	text, err := h.chatService.Complete(r.Context(), req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			// Client went away mid-request; there is nobody to answer.
			log.Println("[AssistantHandlers] Chat request cancelled by client.")
			return
		}
		if errors.Is(err, services.ErrChatUnsupported) {
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondProviderError(w, r.Context(), err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, models.ChatResponse{Text: text})
}

// HandleSearch handles POST /v1/search. The service never fails; a
// degraded result is still a renderable result.
func (h *AssistantHandlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		httputil.RespondError(w, http.StatusBadRequest, "query is required")
		return
	}

	result := h.searchService.Search(r.Context(), req.Query, req.Model)
	httputil.RespondJSON(w, http.StatusOK, result)
}

// HandleSummarize handles POST /v1/summarize.
func (h *AssistantHandlers) HandleSummarize(w http.ResponseWriter, r *http.Request) {
	var req models.SummarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		httputil.RespondError(w, http.StatusBadRequest, "url is required")
		return
	}

	text := h.searchService.SummarizePage(r.Context(), req.URL, req.Model)
	httputil.RespondJSON(w, http.StatusOK, models.SummarizeResponse{Text: text})
}

// HandleListModels handles GET /v1/models.
func (h *AssistantHandlers) HandleListModels(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, models.ModelCatalogResponse{Providers: models.KnownModels})
}

// respondProviderError maps the error taxonomy onto HTTP statuses:
// configuration errors and unknown providers are the client's to fix,
// everything else is an upstream failure.
func respondProviderError(w http.ResponseWriter, ctx context.Context, err error) {
	switch {
	case errors.Is(err, context.Canceled):
		log.Println("[AssistantHandlers] Request cancelled by client.")
	case providers.IsConfigError(err), errors.Is(err, providers.ErrUnknownProvider):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	default:
		httputil.RespondError(w, http.StatusBadGateway, err.Error())
	}
}
