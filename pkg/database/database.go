package database

import (
	"coachpro_backend/internal/config"
	"coachpro_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// Duplicate-key errors must surface as gorm.ErrDuplicatedKey so the
		// enrollment path can report a conflict instead of a 500.
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}

// Migrate brings every table up to date and seeds default settings.
// Additive and idempotent; safe to run on every startup. A failure here is
// fatal to the application, which cannot serve without its tables.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Program{},
		&model.Enrollment{},
		&model.Progress{},
		&model.Session{},
		&model.Assessment{},
		&model.AssessmentResponse{},
		&model.Recommendation{},
		&model.AnalyticsSnapshot{},
		&model.Setting{},
	)
	if err != nil {
		return err
	}

	return seedSettings(db)
}

func seedSettings(db *gorm.DB) error {
	for _, key := range []string{
		model.SettingCurrency,
		model.SettingProgramPage,
		model.SettingCommerceEnabled,
		model.SettingRules,
	} {
		var count int64
		if err := db.Model(&model.Setting{}).Where("`key` = ?", key).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := db.Create(&model.Setting{Key: key, Value: model.SettingDefaults[key]}).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
