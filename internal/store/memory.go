package store

import (
	"context"
	"sync"

	"github.com/luiyisdelacruz31-beep/portfolio-Tienda-virtual/internal/domain"
)

// MemoryStore is the default backend when no external store is
// configured; carts live for the lifetime of the process.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string][]domain.CartLine
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string][]domain.CartLine)}
}

func (m *MemoryStore) Load(_ context.Context, sessionID string) ([]domain.CartLine, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	lines, ok := m.carts[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]domain.CartLine, len(lines))
	copy(out, lines)
	return out, nil
}

func (m *MemoryStore) Save(_ context.Context, sessionID string, lines []domain.CartLine) error {
	stored := make([]domain.CartLine, len(lines))
	copy(stored, lines)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[sessionID] = stored
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, sessionID)
	return nil
}
