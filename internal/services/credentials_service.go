package services

import (
	"context"
	"crypto/cipher"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"linguahub-backend/internal/crypto"
	"linguahub-backend/internal/models"
	"linguahub-backend/internal/store"
	"time"
)

// CredentialsService owns the provider credential record. The record is
// replaced wholesale on update (last write wins); readers take a
// snapshot and observe whatever value is current at call time. At rest
// the record is AES-GCM encrypted in the store.
type CredentialsService struct {
	store store.Store
	aead  cipher.AEAD

	mu        sync.RWMutex
	current   models.ProviderCredentials
	updatedAt time.Time
}

// NewCredentialsService creates the service and loads the persisted
// record. When no record exists yet, seed is used as the starting value
// (typically credentials supplied through the environment).
func NewCredentialsService(ctx context.Context, st store.Store, aead cipher.AEAD, seed models.ProviderCredentials) (*CredentialsService, error) {
	s := &CredentialsService{store: st, aead: aead, current: seed}

	rec, err := st.GetCredentials(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Println("[CredentialsService] No stored credentials found, using environment seed.")
			return s, nil
		}
		return nil, fmt.Errorf("failed to load stored credentials: %w", err)
	}

	plaintext, err := crypto.Decrypt(aead, rec.EncryptedCredentials)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt stored credentials: %w", err)
	}
	var creds models.ProviderCredentials
	if err := json.Unmarshal(plaintext, &creds); err != nil {
		return nil, fmt.Errorf("failed to parse stored credentials: %w", err)
	}

	s.current = creds
	s.updatedAt = rec.UpdatedAt
	log.Println("[CredentialsService] Stored credentials loaded.")
	return s, nil
}

// Snapshot returns the current credential record by value. Adapters read
// one snapshot per call; a concurrent update is picked up by the next
// call, with no atomicity guarantee across an operation that reads
// twice.
func (s *CredentialsService) Snapshot() models.ProviderCredentials {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Get returns the masked record for API responses.
func (s *CredentialsService) Get() models.CredentialsResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.CredentialsResponse{
		Credentials: s.current.Masked(),
		UpdatedAt:   s.updatedAt,
	}
}

// Set replaces the record wholesale, persists it encrypted, and swaps
// the in-memory value so the next adapter call picks up the new
// credentials.
func (s *CredentialsService) Set(ctx context.Context, creds models.ProviderCredentials) error {
	plaintext, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}
	encrypted, err := crypto.Encrypt(s.aead, plaintext)
	if err != nil {
		return fmt.Errorf("failed to encrypt credentials: %w", err)
	}
	if err := s.store.UpsertCredentials(ctx, encrypted); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = creds
	s.updatedAt = time.Now()
	s.mu.Unlock()

	log.Println("[CredentialsService] Provider credentials updated.")
	return nil
}
