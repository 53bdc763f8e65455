package settings

import (
	"context"
	stderrors "errors"
	"strings"
	"sync"

	"whisper-sync/internal/app/errors"
)

// CredentialKey is the fixed name the API key is stored under.
const CredentialKey = "openai_api_key"

// Store is a process-wide key-value persistence for user settings.
// Get returns errors.ErrSettingNotFound for unknown keys.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// CredentialService reads and writes the API key through a Store.
type CredentialService struct {
	store Store
}

func NewCredentialService(store Store) *CredentialService {
	return &CredentialService{store: store}
}

// Get returns the stored key, or "" when none was ever set.
func (c *CredentialService) Get(ctx context.Context) (string, error) {
	v, err := c.store.Get(ctx, CredentialKey)
	if stderrors.Is(err, errors.ErrSettingNotFound) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrap(err, "read credential")
	}
	return v, nil
}

// Set overwrites the stored key. Surrounding whitespace is dropped.
func (c *CredentialService) Set(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.ErrMissingCredential
	}
	return errors.Wrap(c.store.Set(ctx, CredentialKey, key), "write credential")
}

// Clear removes the stored key.
func (c *CredentialService) Clear(ctx context.Context) error {
	return errors.Wrap(c.store.Delete(ctx, CredentialKey), "clear credential")
}

// Seed stores key only when nothing is stored yet.
func (c *CredentialService) Seed(ctx context.Context, key string) error {
	if strings.TrimSpace(key) == "" {
		return nil
	}
	current, err := c.Get(ctx)
	if err != nil {
		return err
	}
	if current != "" {
		return nil
	}
	return c.Set(ctx, key)
}

// MemoryStore is a Store for tests and ephemeral sessions.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return "", errors.ErrSettingNotFound
	}
	return v, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *MemoryStore) Close() error { return nil }
