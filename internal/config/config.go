package config

import (
	"encoding/hex"
	"log"
	"os"

	"linguahub-backend/internal/models"

	"github.com/joho/godotenv"
)

// Config holds application configuration values loaded from environment variables.
type Config struct {
	DatabaseURL   string
	HTTPPort      string
	EncryptionKey []byte // Raw key bytes (32 for AES-256)

	// SeedCredentials is used as the initial provider credential record
	// when no record has been stored yet. Individual fields may be empty;
	// a missing credential only matters when the matching provider is
	// actually called.
	SeedCredentials models.ProviderCredentials
}

// LoadConfig loads configuration from environment variables.
// It looks for a .env file first, then checks actual environment variables.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file (useful for development)
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Could not load .env file. Using environment variables only.", err)
		// Don't fail if .env is not present, might be in production
	}

	port := getEnv("HTTP_PORT", "8080")
	dbURL := getEnv("DATABASE_URL", "") // No default, should fail if not set
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set.")
	}

	// Load and decode the Encryption Key (MUST be 64 hex characters for 32 bytes)
	encryptionKeyHex := getEnv("ENCRYPTION_KEY", "")
	if encryptionKeyHex == "" {
		log.Fatal("FATAL: ENCRYPTION_KEY environment variable is not set.")
	}
	encryptionKeyBytes, err := hex.DecodeString(encryptionKeyHex)
	if err != nil {
		log.Fatalf("FATAL: Failed to decode ENCRYPTION_KEY from hex: %v", err)
	}
	if len(encryptionKeyBytes) != 32 {
		log.Fatalf("FATAL: ENCRYPTION_KEY must be 32 bytes (64 hex characters) long, got %d bytes", len(encryptionKeyBytes))
	}

	cfg := &Config{
		HTTPPort:      port,
		DatabaseURL:   dbURL,
		EncryptionKey: encryptionKeyBytes,
		SeedCredentials: models.ProviderCredentials{
			GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
			GeminiBaseURL: getEnv("GEMINI_BASE_URL", ""),
			OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
			DeepLXURL:     getEnv("DEEPLX_URL", ""),
			TavilyAPIKey:  getEnv("TAVILY_API_KEY", ""),
			BraveAPIKey:   getEnv("BRAVE_API_KEY", ""),
		},
	}

	log.Printf("Loaded config: Port=%s, DB_URL=***, EncryptionKey=***", cfg.HTTPPort)

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
