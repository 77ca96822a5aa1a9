package services

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"testing"
	"time"

	"linguahub-backend/internal/crypto"
	"linguahub-backend/internal/models"
	"linguahub-backend/internal/store"

	"github.com/google/uuid"
)

// memStore is an in-memory store.Store used by service tests.
type memStore struct {
	mu          sync.Mutex
	credentials []byte
	credsAt     time.Time
	settings    json.RawMessage
	history     map[uuid.UUID]models.TranslationRecord
	sessions    map[uuid.UUID]*models.ChatSession
}

var _ store.Store = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{
		history:  make(map[uuid.UUID]models.TranslationRecord),
		sessions: make(map[uuid.UUID]*models.ChatSession),
	}
}

func (m *memStore) GetCredentials(ctx context.Context) (*models.StoredCredentials, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.credentials == nil {
		return nil, store.ErrNotFound
	}
	return &models.StoredCredentials{EncryptedCredentials: m.credentials, UpdatedAt: m.credsAt}, nil
}

func (m *memStore) UpsertCredentials(ctx context.Context, encrypted []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.credentials = encrypted
	m.credsAt = time.Now()
	return nil
}

func (m *memStore) GetSettings(ctx context.Context) (*models.AppSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.settings == nil {
		return nil, store.ErrNotFound
	}
	return &models.AppSettings{Data: m.settings, UpdatedAt: time.Now()}, nil
}

func (m *memStore) UpsertSettings(ctx context.Context, data json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = data
	return nil
}

func (m *memStore) CreateTranslation(ctx context.Context, rec models.TranslationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history[rec.ID] = rec
	return nil
}

func (m *memStore) ListTranslations(ctx context.Context) ([]models.TranslationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	records := make([]models.TranslationRecord, 0, len(m.history))
	for _, rec := range m.history {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].CreatedAt.After(records[j].CreatedAt) })
	return records, nil
}

func (m *memStore) SetTranslationFavorite(ctx context.Context, id uuid.UUID, favorite bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.history[id]
	if !ok {
		return store.ErrNotFound
	}
	rec.Favorite = favorite
	m.history[id] = rec
	return nil
}

func (m *memStore) DeleteTranslation(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.history[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.history, id)
	return nil
}

func (m *memStore) PruneTranslations(ctx context.Context, keep int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var nonFavorites []models.TranslationRecord
	for _, rec := range m.history {
		if !rec.Favorite {
			nonFavorites = append(nonFavorites, rec)
		}
	}
	if len(nonFavorites) <= keep {
		return nil
	}
	sort.Slice(nonFavorites, func(i, j int) bool { return nonFavorites[i].CreatedAt.After(nonFavorites[j].CreatedAt) })
	for _, rec := range nonFavorites[keep:] {
		delete(m.history, rec.ID)
	}
	return nil
}

func (m *memStore) CreateSession(ctx context.Context, arg store.CreateSessionParams) (*models.ChatSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	messages := arg.Messages
	if len(messages) == 0 {
		messages = json.RawMessage("[]")
	}
	now := time.Now()
	session := &models.ChatSession{
		ID:        arg.ID,
		Title:     arg.Title,
		Provider:  arg.Provider,
		Model:     arg.Model,
		Settings:  arg.Settings,
		Messages:  messages,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.sessions[arg.ID] = session
	copied := *session
	return &copied, nil
}

func (m *memStore) GetSessionByID(ctx context.Context, id uuid.UUID) (*models.ChatSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *session
	return &copied, nil
}

func (m *memStore) ListSessions(ctx context.Context) ([]models.ChatSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sessions := make([]models.ChatSession, 0, len(m.sessions))
	for _, session := range m.sessions {
		sessions = append(sessions, *session)
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt) })
	return sessions, nil
}

func (m *memStore) UpdateSessionMessages(ctx context.Context, id uuid.UUID, messages json.RawMessage) (*models.ChatSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	session.Messages = messages
	session.UpdatedAt = time.Now()
	copied := *session
	return &copied, nil
}

func (m *memStore) DeleteSession(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.sessions, id)
	return nil
}

// newTestCredentials builds a CredentialsService seeded with creds over
// an empty memStore.
func newTestCredentials(t testing.TB, seed models.ProviderCredentials) *CredentialsService {
	t.Helper()
	key := make([]byte, 32)
	aead, err := crypto.NewAESGCM(key)
	if err != nil {
		t.Fatalf("failed to create test cipher: %v", err)
	}
	svc, err := NewCredentialsService(context.Background(), newMemStore(), aead, seed)
	if err != nil {
		t.Fatalf("failed to create test credentials service: %v", err)
	}
	return svc
}
