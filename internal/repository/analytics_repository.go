package repository

import (
	"coachpro_backend/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AnalyticsRepository struct {
	DB *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{DB: db}
}

// Upsert replaces the snapshot for the (program, date) pair. Recomputing
// the same day overwrites rather than duplicating.
func (r *AnalyticsRepository) Upsert(ctx context.Context, s *model.AnalyticsSnapshot) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "program_id"}, {Name: "snapshot_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"enrollments", "active", "completion_rate", "avg_score", "updated_at",
		}),
	}).Create(s).Error
}

func (r *AnalyticsRepository) ListForProgram(ctx context.Context, programID uint, from, to time.Time) ([]model.AnalyticsSnapshot, error) {
	var list []model.AnalyticsSnapshot
	err := r.DB.WithContext(ctx).
		Where("program_id = ? AND snapshot_date >= ? AND snapshot_date < ?", programID, from, to).
		Order("snapshot_date asc").
		Find(&list).Error
	return list, err
}
