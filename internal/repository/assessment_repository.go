package repository

import (
	"coachpro_backend/internal/model"
	"context"

	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

func (r *AssessmentRepository) Create(ctx context.Context, a *model.Assessment) error {
	return r.DB.WithContext(ctx).Create(a).Error
}

func (r *AssessmentRepository) FindByID(ctx context.Context, id uint) (*model.Assessment, error) {
	var a model.Assessment
	err := r.DB.WithContext(ctx).First(&a, id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AssessmentRepository) Update(ctx context.Context, a *model.Assessment) error {
	return r.DB.WithContext(ctx).Save(a).Error
}

func (r *AssessmentRepository) ListForProgram(ctx context.Context, programID uint, page, limit int) ([]model.Assessment, int64, error) {
	query := r.DB.WithContext(ctx).Model(&model.Assessment{})
	if programID > 0 {
		query = query.Where("program_id = ?", programID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []model.Assessment
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&list).Error
	return list, total, err
}

func (r *AssessmentRepository) CreateResponse(tx *gorm.DB, resp *model.AssessmentResponse) error {
	return tx.Create(resp).Error
}

func (r *AssessmentRepository) ListResponses(ctx context.Context, assessmentID uint, page, limit int) ([]model.AssessmentResponse, int64, error) {
	query := r.DB.WithContext(ctx).Model(&model.AssessmentResponse{}).
		Where("assessment_id = ?", assessmentID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []model.AssessmentResponse
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&list).Error
	return list, total, err
}
