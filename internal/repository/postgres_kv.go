package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hiennv/logbin/internal/config"
	"github.com/hiennv/logbin/internal/service"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type kvEntry struct {
	Key       string `gorm:"primaryKey"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}

func (kvEntry) TableName() string {
	return "kv_entries"
}

// PostgresKV keeps one row per key and overwrites it with an upsert.
type PostgresKV struct {
	db *gorm.DB
}

func NewPostgresKV(db *gorm.DB) (*PostgresKV, error) {
	if err := db.AutoMigrate(&kvEntry{}); err != nil {
		return nil, err
	}
	return &PostgresKV{db: db}, nil
}

// OpenPostgresKV connects and migrates. The pool is closed again if the
// migration fails, so a fallback caller does not leak connections.
func OpenPostgresKV(cfg *config.Config) (*PostgresKV, error) {
	db, err := NewDB(cfg)
	if err != nil {
		return nil, err
	}
	kv, err := NewPostgresKV(db)
	if err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return nil, fmt.Errorf("migrate kv_entries: %w", err)
	}
	return kv, nil
}

func (r *PostgresKV) Get(ctx context.Context, key string) ([]byte, error) {
	var entry kvEntry
	err := r.db.WithContext(ctx).Where("key = ?", key).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, service.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return entry.Value, nil
}

func (r *PostgresKV) Put(ctx context.Context, key string, value []byte) error {
	entry := kvEntry{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (r *PostgresKV) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
