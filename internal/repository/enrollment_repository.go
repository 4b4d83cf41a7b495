package repository

import (
	"coachpro_backend/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) Find(ctx context.Context, studentID, programID uint) (*model.Enrollment, error) {
	var e model.Enrollment
	err := r.DB.WithContext(ctx).
		Where("student_id = ? AND program_id = ?", studentID, programID).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EnrollmentRepository) UpdateStatus(ctx context.Context, id uint, status model.EnrollmentStatus) error {
	return r.DB.WithContext(ctx).Model(&model.Enrollment{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *EnrollmentRepository) ListForStudent(ctx context.Context, studentID uint) ([]model.Enrollment, error) {
	var list []model.Enrollment
	err := r.DB.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at desc").
		Find(&list).Error
	return list, err
}

func (r *EnrollmentRepository) CountForProgram(ctx context.Context, programID uint, from, to time.Time) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Enrollment{}).
		Where("program_id = ? AND created_at >= ? AND created_at < ?", programID, from, to).
		Count(&count).Error
	return count, err
}

// RecentEnrollment is one row of the dashboard "recent activity" table.
type RecentEnrollment struct {
	StudentName  string                 `gorm:"column:student_name" json:"student"`
	ProgramTitle string                 `gorm:"column:program_title" json:"program"`
	Status       model.EnrollmentStatus `gorm:"column:status" json:"status"`
	UpdatedAt    time.Time              `gorm:"column:updated_at" json:"updated"`
}

func (r *EnrollmentRepository) ListRecent(ctx context.Context, limit int) ([]RecentEnrollment, error) {
	var rows []RecentEnrollment
	err := r.DB.WithContext(ctx).Table("enrollments").
		Select("users.name as student_name, programs.title as program_title, enrollments.status, enrollments.updated_at").
		Joins("JOIN users ON users.id = enrollments.student_id").
		Joins("JOIN programs ON programs.id = enrollments.program_id").
		Where("enrollments.deleted_at IS NULL").
		Order("enrollments.updated_at desc").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
