package service

import (
	"coachpro_backend/pkg/database"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory database with the full schema. One open
// connection keeps every query on the same memory store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func TestSetStoreTimeout(t *testing.T) {
	old := storeTimeout
	t.Cleanup(func() { storeTimeout = old })

	SetStoreTimeout(2 * time.Second)
	ctx, cancel := storeCtx(context.Background())
	defer cancel()

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.InDelta(t, 2*time.Second, time.Until(deadline), float64(200*time.Millisecond))

	// Non-positive values leave the deadline alone.
	SetStoreTimeout(0)
	assert.Equal(t, 2*time.Second, storeTimeout)
}
