package repository

import (
	"coachpro_backend/internal/model"
	"context"

	"gorm.io/gorm"
)

type ProfileRepository struct {
	DB *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

func (r *ProfileRepository) Create(ctx context.Context, p *model.Profile) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

// FindByUser returns the newest profile for the user. The table allows
// several rows per user, so readers always take the latest.
func (r *ProfileRepository) FindByUser(ctx context.Context, userID uint) (*model.Profile, error) {
	var p model.Profile
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) Update(ctx context.Context, p *model.Profile) error {
	return r.DB.WithContext(ctx).Save(p).Error
}
