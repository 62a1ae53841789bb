package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/spec-kit/user-console/internal/domain"
)

// FileAdapter persists the snapshot as a JSON file per storage key, the
// closest analog to the browser's local storage slot.
type FileAdapter struct {
	dir    string
	logger *zap.Logger
}

// NewFileAdapter creates a file-backed adapter rooted at dir.
func NewFileAdapter(dir string, logger *zap.Logger) *FileAdapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileAdapter{dir: dir, logger: logger}
}

// Load reads and decodes the snapshot file for the key.
func (a *FileAdapter) Load(_ context.Context, key string) ([]domain.User, bool, error) {
	data, err := os.ReadFile(a.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read snapshot %s: %w", key, err)
	}

	var users []domain.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, false, fmt.Errorf("decode snapshot %s: %w", key, err)
	}
	return users, true, nil
}

// Save encodes and writes the snapshot file for the key.
func (a *FileAdapter) Save(_ context.Context, key string, users []domain.User) error {
	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}

	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", key, err)
	}
	if err := os.WriteFile(a.path(key), data, 0o644); err != nil {
		return fmt.Errorf("write snapshot %s: %w", key, err)
	}

	a.logger.Debug("snapshot written",
		zap.String("key", key),
		zap.Int("count", len(users)))
	return nil
}

func (a *FileAdapter) path(key string) string {
	return filepath.Join(a.dir, key+".json")
}
