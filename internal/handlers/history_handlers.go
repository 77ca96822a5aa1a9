package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"linguahub-backend/internal/models"
	"linguahub-backend/internal/services"
	"linguahub-backend/internal/store"
	"linguahub-backend/pkg/httputil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// HistoryHandlers handles HTTP requests for the translation history.
type HistoryHandlers struct {
	historyService *services.HistoryService
}

// NewHistoryHandlers creates a new HistoryHandlers instance.
func NewHistoryHandlers(historyService *services.HistoryService) *HistoryHandlers {
	return &HistoryHandlers{historyService: historyService}
}

// HandleListHistory handles GET /v1/history.
func (h *HistoryHandlers) HandleListHistory(w http.ResponseWriter, r *http.Request) {
	records, err := h.historyService.List(r.Context())
	if err != nil {
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to list history: "+err.Error())
		return
	}
	httputil.RespondJSON(w, http.StatusOK, models.ListHistoryResponse{History: records})
}

// HandleSetFavorite handles POST /v1/history/{historyID}/favorite.
func (h *HistoryHandlers) HandleSetFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "historyID")
	if !ok {
		return
	}

	var req models.SetFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.historyService.SetFavorite(r.Context(), id, req.Favorite); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "History entry not found")
			return
		}
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to update history entry: "+err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDeleteHistory handles DELETE /v1/history/{historyID}.
func (h *HistoryHandlers) HandleDeleteHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "historyID")
	if !ok {
		return
	}

	if err := h.historyService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "History entry not found")
			return
		}
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to delete history entry: "+err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// parseIDParam extracts and parses a UUID URL parameter, writing the
// error response itself when parsing fails.
func parseIDParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
