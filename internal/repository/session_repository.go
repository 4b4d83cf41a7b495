package repository

import (
	"coachpro_backend/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Append(ctx context.Context, s *model.Session) error {
	return r.DB.WithContext(ctx).Create(s).Error
}

// ListMessages pages the history for a (student, program) pair in send
// order: created_at ascending, monotonic id breaking ties.
func (r *SessionRepository) ListMessages(ctx context.Context, studentID, programID uint, page, limit int) ([]model.Session, int64, error) {
	query := r.DB.WithContext(ctx).Model(&model.Session{}).
		Where("student_id = ? AND program_id = ?", studentID, programID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []model.Session
	offset := (page - 1) * limit
	err := query.Order("created_at asc, id asc").Offset(offset).Limit(limit).Find(&messages).Error
	return messages, total, err
}

func (r *SessionRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Session{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}
