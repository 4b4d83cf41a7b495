package repository

import (
	"coachpro_backend/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) Find(ctx context.Context, studentID, programID uint) (*model.Progress, error) {
	var p model.Progress
	err := r.DB.WithContext(ctx).
		Where("student_id = ? AND program_id = ?", studentID, programID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ApplyLessonDelta adds delta to lessons_done in a single UPDATE, clamped
// to [0, lessons_total] in SQL so concurrent writers cannot push the row
// out of bounds or overwrite each other's deltas.
func (r *ProgressRepository) ApplyLessonDelta(tx *gorm.DB, studentID, programID uint, delta int, now time.Time) error {
	return tx.Model(&model.Progress{}).
		Where("student_id = ? AND program_id = ?", studentID, programID).
		Updates(map[string]interface{}{
			"lessons_done": gorm.Expr(
				"CASE WHEN lessons_done + ? < 0 THEN 0 "+
					"WHEN lessons_done + ? > lessons_total THEN lessons_total "+
					"ELSE lessons_done + ? END",
				delta, delta, delta),
			"last_active": now,
		}).Error
}

// AvgResponseScore computes the mean assessment score for the pair from
// the response set itself. The running average is always recomputed from
// source rows, never incremented in place.
func (r *ProgressRepository) AvgResponseScore(tx *gorm.DB, studentID, programID uint) (float64, error) {
	var avg float64
	err := tx.Table("assessment_responses").
		Select("COALESCE(AVG(assessment_responses.score), 0)").
		Joins("JOIN assessments ON assessments.id = assessment_responses.assessment_id").
		Where("assessment_responses.student_id = ? AND assessments.program_id = ?", studentID, programID).
		Where("assessment_responses.deleted_at IS NULL AND assessments.deleted_at IS NULL").
		Scan(&avg).Error
	return avg, err
}

func (r *ProgressRepository) SetAvgScore(tx *gorm.DB, studentID, programID uint, avg float64) error {
	return tx.Model(&model.Progress{}).
		Where("student_id = ? AND program_id = ?", studentID, programID).
		Update("avg_score", avg).Error
}

// ProgramStats is a live aggregate over progress rows active in a window.
type ProgramStats struct {
	Active         int64   `gorm:"column:active"`
	CompletionRate float64 `gorm:"column:completion_rate"`
	AvgScore       float64 `gorm:"column:avg_score"`
}

func (r *ProgressRepository) StatsForProgram(ctx context.Context, programID uint, from, to time.Time) (*ProgramStats, error) {
	var stats ProgramStats
	err := r.DB.WithContext(ctx).Model(&model.Progress{}).
		Select("COUNT(*) as active, "+
			"COALESCE(AVG(CASE WHEN lessons_total > 0 AND lessons_done >= lessons_total THEN 1.0 ELSE 0.0 END), 0) as completion_rate, "+
			"COALESCE(AVG(avg_score), 0) as avg_score").
		Where("program_id = ? AND last_active >= ? AND last_active < ?", programID, from, to).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *ProgressRepository) CountActiveStudents(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Progress{}).
		Where("last_active >= ?", since).
		Distinct("student_id").
		Count(&count).Error
	return count, err
}

func (r *ProgressRepository) OverallAvgScore(ctx context.Context) (float64, error) {
	var avg float64
	err := r.DB.WithContext(ctx).Model(&model.Progress{}).
		Select("COALESCE(AVG(avg_score), 0)").
		Scan(&avg).Error
	return avg, err
}
