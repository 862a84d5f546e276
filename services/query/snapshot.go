package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"toorrii_site/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNoSnapshot is returned by SnapshotStore.Load when key was never saved.
var ErrNoSnapshot = errors.New("no snapshot")

// SnapshotStore persists the last successful payload of each key.
type SnapshotStore interface {
	Load(ctx context.Context, key string) ([]byte, time.Time, error)
	Save(ctx context.Context, key string, payload []byte, fetchedAt time.Time) error
}

// GormSnapshotStore keeps snapshots in the content_snapshots table.
type GormSnapshotStore struct {
	db *gorm.DB
}

// NewGormSnapshotStore creates a store over database. The table must exist
// (see models.ContentSnapshot).
func NewGormSnapshotStore(database *gorm.DB) *GormSnapshotStore {
	return &GormSnapshotStore{db: database}
}

// Load implements SnapshotStore
func (s *GormSnapshotStore) Load(ctx context.Context, key string) ([]byte, time.Time, error) {
	var snap models.ContentSnapshot
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&snap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, time.Time{}, ErrNoSnapshot
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to query snapshot: %w", err)
	}
	return snap.Payload, snap.FetchedAt, nil
}

// Save implements SnapshotStore, replacing any previous snapshot of key.
func (s *GormSnapshotStore) Save(ctx context.Context, key string, payload []byte, fetchedAt time.Time) error {
	snap := models.ContentSnapshot{
		Key:       key,
		Payload:   payload,
		FetchedAt: fetchedAt,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "fetched_at", "updated_at"}),
	}).Create(&snap).Error
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}
