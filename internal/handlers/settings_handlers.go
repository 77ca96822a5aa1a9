package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"linguahub-backend/internal/models"
	"linguahub-backend/internal/services"
	"linguahub-backend/pkg/httputil"
)

// SettingsHandlers handles the settings blob and the provider
// credential record.
type SettingsHandlers struct {
	settingsService    *services.SettingsService
	credentialsService *services.CredentialsService
}

// NewSettingsHandlers creates a new SettingsHandlers instance.
func NewSettingsHandlers(settingsService *services.SettingsService, credentialsService *services.CredentialsService) *SettingsHandlers {
	return &SettingsHandlers{
		settingsService:    settingsService,
		credentialsService: credentialsService,
	}
}

// HandleGetSettings handles GET /v1/settings.
func (h *SettingsHandlers) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsService.Get(r.Context())
	if err != nil {
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to get settings: "+err.Error())
		return
	}
	httputil.RespondJSON(w, http.StatusOK, settings)
}

// HandlePutSettings handles PUT /v1/settings. The body is stored
// verbatim as long as it is valid JSON.
func (h *SettingsHandlers) HandlePutSettings(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}
	if !json.Valid(body) {
		httputil.RespondError(w, http.StatusBadRequest, "Settings must be valid JSON")
		return
	}

	if err := h.settingsService.Put(r.Context(), body); err != nil {
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to store settings: "+err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleGetCredentials handles GET /v1/credentials. Secrets are masked.
func (h *SettingsHandlers) HandleGetCredentials(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.credentialsService.Get())
}

// HandlePutCredentials handles PUT /v1/credentials: replaces the record
// wholesale and invalidates anything derived from the previous one.
func (h *SettingsHandlers) HandlePutCredentials(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateCredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.credentialsService.Set(r.Context(), req.Credentials); err != nil {
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to store credentials: "+err.Error())
		return
	}
	httputil.RespondJSON(w, http.StatusOK, h.credentialsService.Get())
}
