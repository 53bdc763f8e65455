package audio

import (
	"context"
	"path"
	"strings"
	"sync"

	"whisper-sync/internal/app/errors"
)

// MediaStore hands out playable URLs for audio sources.
// A URL stays valid until it is released.
type MediaStore interface {
	Acquire(ctx context.Context, src *Source) (string, error)
	Release(ctx context.Context, url string) error
}

// MemoryStore keeps blobs in process and serves them under a URL prefix.
type MemoryStore struct {
	prefix string

	mu      sync.RWMutex
	sources map[string]*Source
}

// NewMemoryStore creates a store whose URLs look like "<prefix>/<source id>".
func NewMemoryStore(prefix string) *MemoryStore {
	if prefix == "" {
		prefix = "/media"
	}
	return &MemoryStore{
		prefix:  strings.TrimRight(prefix, "/"),
		sources: make(map[string]*Source),
	}
}

// Acquire registers src and returns its URL. Acquiring twice returns the same URL.
func (m *MemoryStore) Acquire(_ context.Context, src *Source) (string, error) {
	if src.Empty() {
		return "", errors.ErrMissingAudio
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sources[src.ID] = src
	return m.urlFor(src.ID), nil
}

// Release forgets the blob behind url. Unknown URLs are ignored.
func (m *MemoryStore) Release(_ context.Context, url string) error {
	id := path.Base(url)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sources, id)
	return nil
}

// Lookup returns the source registered under id.
func (m *MemoryStore) Lookup(id string) (*Source, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	src, ok := m.sources[id]
	if !ok {
		return nil, errors.Wrap(errors.ErrMediaNotFound, id)
	}
	return src, nil
}

// Resolve maps a URL from Acquire back to its source.
func (m *MemoryStore) Resolve(url string) (*Source, bool) {
	if !strings.HasPrefix(url, m.prefix+"/") {
		return nil, false
	}
	src, err := m.Lookup(path.Base(url))
	return src, err == nil
}

// Len reports how many blobs are currently held.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sources)
}

func (m *MemoryStore) urlFor(id string) string {
	return m.prefix + "/" + id
}

// FileStore is used by the CLI: file-backed sources play from their own path,
// in-memory ones are refused.
type FileStore struct{}

func (FileStore) Acquire(_ context.Context, src *Source) (string, error) {
	if src.Empty() {
		return "", errors.ErrMissingAudio
	}
	if src.Path() == "" {
		return "", errors.New("file store only serves file-backed sources")
	}
	return src.Path(), nil
}

func (FileStore) Release(context.Context, string) error { return nil }
