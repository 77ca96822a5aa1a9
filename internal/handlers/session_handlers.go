package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"linguahub-backend/internal/models"
	"linguahub-backend/internal/services"
	"linguahub-backend/internal/store"
	"linguahub-backend/pkg/httputil"
)

// SessionHandlers handles HTTP requests for chat sessions.
type SessionHandlers struct {
	sessionService *services.SessionService
}

// NewSessionHandlers creates a new SessionHandlers instance.
func NewSessionHandlers(sessionService *services.SessionService) *SessionHandlers {
	return &SessionHandlers{sessionService: sessionService}
}

// HandleCreateSession handles POST /v1/sessions.
func (h *SessionHandlers) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, err := h.sessionService.Create(r.Context(), req)
	if err != nil {
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to create session: "+err.Error())
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, session)
}

// HandleListSessions handles GET /v1/sessions.
func (h *SessionHandlers) HandleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessionService.List(r.Context())
	if err != nil {
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to list sessions: "+err.Error())
		return
	}
	httputil.RespondJSON(w, http.StatusOK, models.ListSessionsResponse{Sessions: sessions})
}

// HandleGetSession handles GET /v1/sessions/{sessionID}.
func (h *SessionHandlers) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "sessionID")
	if !ok {
		return
	}

	session, err := h.sessionService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "Session not found")
			return
		}
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to get session: "+err.Error())
		return
	}
	httputil.RespondJSON(w, http.StatusOK, session)
}

// HandleAppendMessage handles POST /v1/sessions/{sessionID}/messages.
func (h *SessionHandlers) HandleAppendMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "sessionID")
	if !ok {
		return
	}

	var req models.AppendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Message.Role != models.RoleUser && req.Message.Role != models.RoleAssistant {
		httputil.RespondError(w, http.StatusBadRequest, "message role must be 'user' or 'assistant'")
		return
	}

	if err := h.sessionService.AppendMessages(r.Context(), id, req.Message); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "Session not found")
			return
		}
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to append message: "+err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDeleteSession handles DELETE /v1/sessions/{sessionID}.
func (h *SessionHandlers) HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "sessionID")
	if !ok {
		return
	}

	if err := h.sessionService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "Session not found")
			return
		}
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to delete session: "+err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
