package api

import (
	"net/http"

	"linguahub-backend/internal/config"
	"linguahub-backend/internal/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterDependencies holds all the dependencies required by the router
// setup, primarily handlers and configuration.
type RouterDependencies struct {
	AssistantHandler *handlers.AssistantHandlers
	HistoryHandler   *handlers.HistoryHandlers
	SessionHandler   *handlers.SessionHandlers
	SettingsHandler  *handlers.SettingsHandlers
	Config           *config.Config
}

// NewRouter creates and configures the main Chi router for the
// application. There is deliberately no request timeout middleware:
// chat and search calls run until the upstream answers or the client
// cancels.
func NewRouter(deps RouterDependencies) *chi.Mux {
	r := chi.NewRouter()

	// --- Base Middleware Stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// --- CORS Configuration ---
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/v1", func(r chi.Router) {
		// --- Orchestration core ---
		r.Post("/translate", deps.AssistantHandler.HandleTranslate)
		r.Post("/chat", deps.AssistantHandler.HandleChat)
		r.Post("/search", deps.AssistantHandler.HandleSearch)
		r.Post("/summarize", deps.AssistantHandler.HandleSummarize)
		r.Get("/models", deps.AssistantHandler.HandleListModels)

		// --- Translation history ---
		r.Route("/history", func(r chi.Router) {
			r.Get("/", deps.HistoryHandler.HandleListHistory)
			r.Post("/{historyID}/favorite", deps.HistoryHandler.HandleSetFavorite)
			r.Delete("/{historyID}", deps.HistoryHandler.HandleDeleteHistory)
		})

		// --- Chat sessions ---
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", deps.SessionHandler.HandleCreateSession)
			r.Get("/", deps.SessionHandler.HandleListSessions)
			r.Get("/{sessionID}", deps.SessionHandler.HandleGetSession)
			r.Post("/{sessionID}/messages", deps.SessionHandler.HandleAppendMessage)
			r.Delete("/{sessionID}", deps.SessionHandler.HandleDeleteSession)
		})

		// --- Settings & provider credentials ---
		r.Get("/settings", deps.SettingsHandler.HandleGetSettings)
		r.Put("/settings", deps.SettingsHandler.HandlePutSettings)
		r.Get("/credentials", deps.SettingsHandler.HandleGetCredentials)
		r.Put("/credentials", deps.SettingsHandler.HandlePutCredentials)
	})

	return r
}
