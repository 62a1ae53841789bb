package persistence

import (
	"context"
	"sync"

	"github.com/spec-kit/user-console/internal/domain"
)

var _ Adapter = (*MemoryAdapter)(nil)

// MemoryAdapter keeps snapshots in a map. It backs tests and ephemeral
// runs where nothing should touch disk.
type MemoryAdapter struct {
	mu    sync.RWMutex
	slots map[string][]domain.User
}

// NewMemoryAdapter creates an empty in-memory adapter.
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{slots: make(map[string][]domain.User)}
}

// Load returns a copy of the stored snapshot, if any.
func (a *MemoryAdapter) Load(_ context.Context, key string) ([]domain.User, bool, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	users, ok := a.slots[key]
	if !ok {
		return nil, false, nil
	}
	snapshot := make([]domain.User, len(users))
	copy(snapshot, users)
	return snapshot, true, nil
}

// Save stores a copy of the snapshot.
func (a *MemoryAdapter) Save(_ context.Context, key string, users []domain.User) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	snapshot := make([]domain.User, len(users))
	copy(snapshot, users)
	a.slots[key] = snapshot
	return nil
}
