package database

import (
	"coachpro_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	return db
}

func TestMigrate_IsIdempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))

	// Data written between runs must survive a second migration.
	require.NoError(t, db.Create(&model.Program{Title: "Kettlebell 101", LessonCount: 6}).Error)
	require.NoError(t, db.Create(&model.Setting{Key: "custom", Value: "kept"}).Error)

	require.NoError(t, Migrate(db))

	var program model.Program
	require.NoError(t, db.First(&program, "title = ?", "Kettlebell 101").Error)
	assert.Equal(t, 6, program.LessonCount)

	var setting model.Setting
	require.NoError(t, db.First(&setting, "`key` = ?", "custom").Error)
	assert.Equal(t, "kept", setting.Value)
}

func TestMigrate_SeedsDefaultsOnce(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))

	var currency model.Setting
	require.NoError(t, db.First(&currency, "`key` = ?", model.SettingCurrency).Error)
	assert.Equal(t, "USD", currency.Value)

	// An operator override is not reset by a later migration.
	require.NoError(t, db.Model(&model.Setting{}).
		Where("`key` = ?", model.SettingCurrency).Update("value", "GBP").Error)
	require.NoError(t, Migrate(db))

	require.NoError(t, db.First(&currency, "`key` = ?", model.SettingCurrency).Error)
	assert.Equal(t, "GBP", currency.Value)

	var count int64
	require.NoError(t, db.Model(&model.Setting{}).Count(&count).Error)
	assert.EqualValues(t, 4, count)
}

func TestMigrate_EnforcesUniquePairs(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))

	require.NoError(t, db.Create(&model.Enrollment{StudentID: 1, ProgramID: 1}).Error)
	err := db.Create(&model.Enrollment{StudentID: 1, ProgramID: 1}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// Profiles deliberately carry no such constraint.
	require.NoError(t, db.Create(&model.Profile{UserID: 1}).Error)
	require.NoError(t, db.Create(&model.Profile{UserID: 1}).Error)
}
