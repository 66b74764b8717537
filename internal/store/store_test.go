package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) Store {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Entry{}))
	return NewGormStore(db)
}

func TestStore_MissingKeyIsNormal(t *testing.T) {
	s := newTestStore(t)

	value, found, err := s.Get(context.Background(), KeyAuthToken)

	assert.NoError(t, err, "a missing key is not an error")
	assert.False(t, found)
	assert.Empty(t, value)
}

func TestStore_SetGetRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, KeyAuthToken, "token-123"))

	value, found, err := s.Get(ctx, KeyAuthToken)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "token-123", value)
}

func TestStore_SetOverwrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, KeyUserEmail, "first@example.edu"))
	require.NoError(t, s.Set(ctx, KeyUserEmail, "second@example.edu"))

	value, found, err := s.Get(ctx, KeyUserEmail)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "second@example.edu", value)
}

func TestStore_Delete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, KeyBorrowItem, `{"device":{"id":1}}`))
	require.NoError(t, s.Delete(ctx, KeyBorrowItem))

	_, found, err := s.Get(ctx, KeyBorrowItem)
	require.NoError(t, err)
	assert.False(t, found)

	// Deleting an absent key is a no-op, not an error.
	assert.NoError(t, s.Delete(ctx, KeyBorrowItem))
}
