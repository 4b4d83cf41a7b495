package service

import (
	"coachpro_backend/internal/model"
	"coachpro_backend/internal/repository"
	"coachpro_backend/internal/util"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type EnrollmentService struct {
	EnrollRepo   *repository.EnrollmentRepository
	ProgressRepo *repository.ProgressRepository
	ProgramRepo  *repository.ProgramRepository
	DB           *gorm.DB
}

func NewEnrollmentService(
	enrollRepo *repository.EnrollmentRepository,
	progressRepo *repository.ProgressRepository,
	programRepo *repository.ProgramRepository,
	db *gorm.DB,
) *EnrollmentService {
	return &EnrollmentService{
		EnrollRepo:   enrollRepo,
		ProgressRepo: progressRepo,
		ProgramRepo:  programRepo,
		DB:           db,
	}
}

// Enroll creates the Enrollment and its initial Progress row in one
// transaction: both exist afterwards or neither does. A second enroll for
// the same pair fails with a conflict; under concurrent calls the unique
// key on (student_id, program_id) guarantees exactly one winner.
func (s *EnrollmentService) Enroll(ctx context.Context, studentID, programID uint) (*model.Enrollment, error) {
	ctx, cancel := storeCtx(ctx)
	defer cancel()

	program, err := s.ProgramRepo.FindByID(ctx, programID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProgramNotFound
		}
		return nil, err
	}

	if _, err := s.EnrollRepo.Find(ctx, studentID, programID); err == nil {
		return nil, util.ErrAlreadyEnrolled
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	enrollment := &model.Enrollment{
		StudentID: studentID,
		ProgramID: programID,
		Status:    model.StatusEnrolled,
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(enrollment).Error; err != nil {
			return err
		}
		progress := &model.Progress{
			StudentID:    studentID,
			ProgramID:    programID,
			LessonsTotal: program.LessonCount,
			LessonsDone:  0,
			AvgScore:     0,
		}
		return tx.Create(progress).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrAlreadyEnrolled
		}
		return nil, err
	}

	return enrollment, nil
}

// RecordActivity upserts the pair's progress: lessons_done moves by delta
// (clamped in SQL), avg_score is recomputed from the assessment response
// set, last_active is bumped. Transient store failures are retried a
// bounded number of times.
func (s *EnrollmentService) RecordActivity(ctx context.Context, studentID, programID uint, lessonsDelta int) (*model.Progress, error) {
	ctx, cancel := storeCtx(ctx)
	defer cancel()

	err := withRetry(3, func() error {
		return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := s.ProgressRepo.ApplyLessonDelta(tx, studentID, programID, lessonsDelta, time.Now()); err != nil {
				return err
			}
			avg, err := s.ProgressRepo.AvgResponseScore(tx, studentID, programID)
			if err != nil {
				return err
			}
			return s.ProgressRepo.SetAvgScore(tx, studentID, programID, util.Round2(avg))
		})
	})
	if err != nil {
		return nil, err
	}

	progress, err := s.ProgressRepo.Find(ctx, studentID, programID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProgressNotFound
		}
		return nil, err
	}

	if err := s.advanceStatus(ctx, studentID, programID, progress); err != nil {
		return nil, err
	}

	return progress, nil
}

// advanceStatus walks the enrollment state machine off recorded activity:
// first activity marks the enrollment active, finishing every lesson marks
// it completed.
func (s *EnrollmentService) advanceStatus(ctx context.Context, studentID, programID uint, progress *model.Progress) error {
	enrollment, err := s.EnrollRepo.Find(ctx, studentID, programID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrEnrollNotFound
		}
		return err
	}

	var next model.EnrollmentStatus
	switch {
	case progress.Completed():
		next = model.StatusCompleted
	default:
		next = model.StatusActive
	}

	if next == enrollment.Status || !enrollment.Status.CanTransition(next) {
		return nil
	}
	return s.EnrollRepo.UpdateStatus(ctx, enrollment.ID, next)
}

func (s *EnrollmentService) GetProgress(ctx context.Context, studentID, programID uint) (*model.Progress, error) {
	ctx, cancel := storeCtx(ctx)
	defer cancel()

	progress, err := s.ProgressRepo.Find(ctx, studentID, programID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProgressNotFound
		}
		return nil, err
	}
	return progress, nil
}

// Cancel moves the enrollment to cancelled. Terminal states stay put.
func (s *EnrollmentService) Cancel(ctx context.Context, studentID, programID uint) error {
	ctx, cancel := storeCtx(ctx)
	defer cancel()

	enrollment, err := s.EnrollRepo.Find(ctx, studentID, programID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrEnrollNotFound
		}
		return err
	}

	if !enrollment.Status.CanTransition(model.StatusCancelled) {
		return util.ErrInvalidStatus
	}
	return s.EnrollRepo.UpdateStatus(ctx, enrollment.ID, model.StatusCancelled)
}

func (s *EnrollmentService) ListForStudent(ctx context.Context, studentID uint) ([]model.Enrollment, error) {
	ctx, cancel := storeCtx(ctx)
	defer cancel()
	return s.EnrollRepo.ListForStudent(ctx, studentID)
}
