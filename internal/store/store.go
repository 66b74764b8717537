package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Well-known keys. These mirror the keys the mobile client keeps in its
// device-local storage.
const (
	KeyAuthToken          = "authToken"
	KeyUserEmail          = "userEmail"
	KeyRedirectAfterLogin = "redirectAfterLogin"
	KeyBorrowItem         = "borrowItem"
)

// Store is the device-local persistent key-value store holding the session
// token, the signed-in email, the post-login redirect target and the pending
// borrow item. A missing key is a normal outcome, reported via the found
// flag, never as an error.
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Entry is a single persisted key-value pair.
type Entry struct {
	Key       string `gorm:"primaryKey;size:128"`
	Value     string
	UpdatedAt time.Time
}

// TableName keeps the table name stable regardless of gorm's pluralization.
func (Entry) TableName() string { return "kv_entries" }

// gormStore implements Store on a local SQLite database.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Get(ctx context.Context, key string) (string, bool, error) {
	var entry Entry
	err := s.db.WithContext(ctx).First(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return entry.Value, true, nil
}

func (s *gormStore) Set(ctx context.Context, key, value string) error {
	entry := Entry{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

func (s *gormStore) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Delete(&Entry{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}
