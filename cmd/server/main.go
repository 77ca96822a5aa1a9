package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"linguahub-backend/internal/api"
	"linguahub-backend/internal/config"
	"linguahub-backend/internal/crypto"
	"linguahub-backend/internal/handlers"
	"linguahub-backend/internal/ocr"
	"linguahub-backend/internal/providers"
	"linguahub-backend/internal/search"
	"linguahub-backend/internal/services"
	"linguahub-backend/internal/store/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	log.Println("Starting LinguaHub Backend...")

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}
	log.Println("Configuration loaded successfully.")

	// 2. Initialize Database Connection Pool
	dbCtx, dbCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer dbCancel()

	dbpool, err := pgxpool.New(dbCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("FATAL: Unable to create database connection pool: %v\n", err)
	}
	defer dbpool.Close()

	if err := dbpool.Ping(dbCtx); err != nil {
		log.Fatalf("FATAL: Unable to ping database: %v\n", err)
	}
	log.Println("Database connection pool established and pinged successfully.")

	// 3. Initialize Dependencies (Store, Adapters, Services, Handlers)
	pgStore := postgres.NewPostgresStore(dbpool)
	log.Println("Postgres store initialized.")

	aead, err := crypto.NewAESGCM(cfg.EncryptionKey)
	if err != nil {
		log.Fatalf("FATAL: Failed to create AES-GCM cipher: %v", err)
	}
	log.Println("AES-GCM cipher initialized.")

	// --- Provider adapters ---
	// One shared HTTP client; no client-side timeout, callers cancel
	// via request context.
	httpClient := &http.Client{}

	geminiAdapter := providers.NewGeminiAdapter(httpClient)
	openaiAdapter := providers.NewOpenAIAdapter(httpClient)
	deeplxAdapter := providers.NewDeepLXAdapter(httpClient)

	registry := providers.NewRegistry()
	registry.Register(geminiAdapter)
	registry.Register(openaiAdapter)
	registry.Register(deeplxAdapter)
	log.Println("ProviderRegistry initialized and populated.")

	wikipediaClient := search.NewWikipediaClient("", httpClient)
	tavilyClient := search.NewTavilyClient("", httpClient)
	braveClient := search.NewBraveClient("", httpClient)
	log.Println("Search clients initialized.")

	ocrEngine := ocr.NewTesseractEngine()

	// --- Services ---
	credentialsService, err := services.NewCredentialsService(dbCtx, pgStore, aead, cfg.SeedCredentials)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize CredentialsService: %v", err)
	}
	log.Println("CredentialsService initialized.")
	historyService := services.NewHistoryService(pgStore)
	log.Println("HistoryService initialized.")
	sessionService := services.NewSessionService(pgStore)
	log.Println("SessionService initialized.")
	settingsService := services.NewSettingsService(pgStore)
	log.Println("SettingsService initialized.")
	translateService := services.NewTranslateService(registry, ocrEngine, credentialsService, historyService)
	log.Println("TranslateService initialized.")
	chatService := services.NewChatService(geminiAdapter, openaiAdapter, credentialsService, sessionService)
	log.Println("ChatService initialized.")
	searchService := services.NewSearchService(geminiAdapter, credentialsService, wikipediaClient, tavilyClient, braveClient)
	log.Println("SearchService initialized.")

	// --- Handlers ---
	assistantHandler := handlers.NewAssistantHandlers(translateService, chatService, searchService)
	historyHandler := handlers.NewHistoryHandlers(historyService)
	sessionHandler := handlers.NewSessionHandlers(sessionService)
	settingsHandler := handlers.NewSettingsHandlers(settingsService, credentialsService)
	log.Println("Handlers initialized.")

	// 4. Setup Router & Inject Dependencies
	routerDeps := api.RouterDependencies{
		AssistantHandler: assistantHandler,
		HistoryHandler:   historyHandler,
		SessionHandler:   sessionHandler,
		SettingsHandler:  settingsHandler,
		Config:           cfg,
	}
	router := api.NewRouter(routerDeps)
	log.Println("HTTP router configured.")

	// 5. Configure and Start HTTP Server
	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
		// Read/idle guards only; no write timeout, long-running chat and
		// search calls end when the upstream answers or the client cancels.
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting and listening on port %s", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: Could not listen on %s: %v\n", cfg.HTTPPort, err)
		}
		log.Println("Server listener routine stopped.")
	}()

	<-stopChan
	log.Println("Shutdown signal received, initiating graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("WARN: Server graceful shutdown failed: %v", err)
	}

	log.Println("Server shutdown complete.")
}
