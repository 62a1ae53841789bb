package persistence

import (
	"context"

	"github.com/spec-kit/user-console/internal/domain"
)

// DefaultStorageKey is the slot the roster snapshot is persisted under when
// no override is configured.
const DefaultStorageKey = "scheduling_users"

// Adapter stores and retrieves the full roster snapshot under a named key.
// Load reports found=false when no snapshot has ever been saved to the
// slot; that is not an error.
type Adapter interface {
	Load(ctx context.Context, key string) (users []domain.User, found bool, err error)
	Save(ctx context.Context, key string, users []domain.User) error
}
