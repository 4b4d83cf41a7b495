package repository

import (
	"coachpro_backend/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.DB.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdateLastLogin(userID uint) error {
	return r.DB.Model(&model.User{}).Where("id = ?", userID).
		Update("last_login", time.Now()).Error
}

// StudentSummary is one row of the admin students table.
type StudentSummary struct {
	StudentID uint    `json:"studentId"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Enrolled  int     `json:"enrolled"`
	AvgScore  float64 `json:"avgScore"`
}

// ListStudents pages through students with their enrollment count and mean
// progress score, optionally filtered by name or email.
func (r *UserRepository) ListStudents(ctx context.Context, page, limit int, search string) ([]StudentSummary, int64, error) {
	query := r.DB.WithContext(ctx).Model(&model.User{}).Where("role = ?", model.Student)

	if search != "" {
		term := "%" + search + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var students []model.User
	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&students).Error; err != nil {
		return nil, 0, err
	}

	results := make([]StudentSummary, 0, len(students))
	for _, student := range students {
		var stats struct {
			Enrolled int     `gorm:"column:enrolled"`
			AvgScore float64 `gorm:"column:avg_score"`
		}
		err := r.DB.WithContext(ctx).Table("enrollments").
			Select("COUNT(enrollments.id) as enrolled, COALESCE(AVG(learning_progress.avg_score), 0) as avg_score").
			Joins("LEFT JOIN learning_progress ON learning_progress.student_id = enrollments.student_id AND learning_progress.program_id = enrollments.program_id AND learning_progress.deleted_at IS NULL").
			Where("enrollments.student_id = ? AND enrollments.deleted_at IS NULL", student.ID).
			Scan(&stats).Error
		if err != nil {
			return nil, 0, err
		}

		results = append(results, StudentSummary{
			StudentID: student.ID,
			Name:      student.Name,
			Email:     student.Email,
			Enrolled:  stats.Enrolled,
			AvgScore:  stats.AvgScore,
		})
	}

	return results, total, nil
}
