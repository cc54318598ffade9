package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sharespace/internal/model"
)

func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// every sqlite :memory: connection is its own database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&model.AuthEvent{}))
	return db
}

func TestAuthEventRepository_CreateAndList(t *testing.T) {
	ctx := context.Background()
	repo := NewAuthEventRepository(newSQLiteDB(t))

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	events := []model.AuthEvent{
		{UserID: "u1", Type: model.AuthEventSignup, CreatedAt: base},
		{UserID: "u1", Type: model.AuthEventLogin, CreatedAt: base.Add(time.Minute)},
		{UserID: "u2", Type: model.AuthEventLogin, CreatedAt: base.Add(2 * time.Minute)},
		{UserID: "u1", Type: model.AuthEventProfileUpdate, CreatedAt: base.Add(3 * time.Minute)},
	}
	for i := range events {
		require.NoError(t, repo.Create(ctx, &events[i]))
		assert.NotZero(t, events[i].ID)
	}

	got, err := repo.ListByUserID(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, model.AuthEventProfileUpdate, got[0].Type)
	assert.Equal(t, model.AuthEventSignup, got[2].Type)

	limited, err := repo.ListByUserID(ctx, "u1", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	none, err := repo.ListByUserID(ctx, "nobody", 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}
