package providers

import (
	"context"
	"fmt"
	"log"

	"linguahub-backend/internal/models"
)

// Translator is the canonical interface every translate adapter
// implements: convert one TranslateRequest into a provider-specific wire
// call and extract the canonical text output. Credentials are passed per
// call so a configuration update is visible on the next request.
type Translator interface {
	Name() models.Provider
	Translate(ctx context.Context, creds models.ProviderCredentials, req models.TranslateRequest) (string, error)
}

// Registry holds the mapping between provider identifiers and their
// Translator implementations.
type Registry struct {
	translators map[models.Provider]Translator
}

// NewRegistry creates a new provider registry.
func NewRegistry() *Registry {
	return &Registry{
		translators: make(map[models.Provider]Translator),
	}
}

// Register adds a translator to the registry.
func (r *Registry) Register(t Translator) {
	if _, exists := r.translators[t.Name()]; exists {
		log.Printf("WARN [ProviderRegistry] Provider '%s' is already registered. Overwriting.", t.Name())
	}
	r.translators[t.Name()] = t
	log.Printf("[ProviderRegistry] Registered translate adapter for provider: %s", t.Name())
}

// Get retrieves a translator by provider identifier. Unknown identifiers
// fail with ErrUnknownProvider.
func (r *Registry) Get(provider models.Provider) (Translator, error) {
	t, exists := r.translators[provider]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}
	return t, nil
}
