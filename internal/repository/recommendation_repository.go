package repository

import (
	"coachpro_backend/internal/model"
	"context"

	"gorm.io/gorm"
)

type RecommendationRepository struct {
	DB *gorm.DB
}

func NewRecommendationRepository(db *gorm.DB) *RecommendationRepository {
	return &RecommendationRepository{DB: db}
}

// Create writes one recommendation row. Rows are never updated afterwards.
func (r *RecommendationRepository) Create(ctx context.Context, rec *model.Recommendation) error {
	return r.DB.WithContext(ctx).Create(rec).Error
}

func (r *RecommendationRepository) ListForPair(ctx context.Context, studentID, programID uint, limit int) ([]model.Recommendation, error) {
	var list []model.Recommendation
	err := r.DB.WithContext(ctx).
		Where("student_id = ? AND program_id = ?", studentID, programID).
		Order("created_at desc").
		Limit(limit).
		Find(&list).Error
	return list, err
}
