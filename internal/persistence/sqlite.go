package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	driver "github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/spec-kit/user-console/internal/domain"
)

var _ Adapter = (*SQLiteAdapter)(nil)

type snapshotRow struct {
	StorageKey string    `gorm:"primaryKey;column:storage_key"`
	Payload    string    `gorm:"column:payload"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (snapshotRow) TableName() string {
	return "user_snapshots"
}

// SQLiteAdapter persists the snapshot in a local sqlite database file.
type SQLiteAdapter struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewSQLiteAdapter opens (or creates) the database at path and migrates
// the snapshot table.
func NewSQLiteAdapter(path string, logger *zap.Logger) (*SQLiteAdapter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := gorm.Open(driver.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if err := db.AutoMigrate(&snapshotRow{}); err != nil {
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}

	logger.Info("sqlite storage ready", zap.String("path", path))
	return &SQLiteAdapter{db: db, logger: logger}, nil
}

// Load fetches and decodes the snapshot row for the key.
func (a *SQLiteAdapter) Load(ctx context.Context, key string) ([]domain.User, bool, error) {
	var row snapshotRow
	err := a.db.WithContext(ctx).First(&row, "storage_key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("select snapshot %s: %w", key, err)
	}

	var users []domain.User
	if err := json.Unmarshal([]byte(row.Payload), &users); err != nil {
		return nil, false, fmt.Errorf("decode snapshot %s: %w", key, err)
	}
	return users, true, nil
}

// Save upserts the snapshot row for the key.
func (a *SQLiteAdapter) Save(ctx context.Context, key string, users []domain.User) error {
	payload, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", key, err)
	}

	row := snapshotRow{
		StorageKey: key,
		Payload:    string(payload),
		UpdatedAt:  time.Now(),
	}
	err = a.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "storage_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("upsert snapshot %s: %w", key, err)
	}
	return nil
}
