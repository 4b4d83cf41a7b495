package service

import (
	"coachpro_backend/internal/model"
	"coachpro_backend/internal/repository"
	"coachpro_backend/internal/util"
	"coachpro_backend/pkg/logger"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Scorer turns a config and a student's answers into a score in [0,100].
// The scoring function is assessment-specific and pluggable; the default
// awards each question's points on an exact key match and scales the
// earned fraction to 100.
type Scorer func(cfg model.AssessmentConfig, answers map[string]string) (float64, error)

func DefaultScorer(cfg model.AssessmentConfig, answers map[string]string) (float64, error) {
	var total, earned float64
	for _, q := range cfg.Questions {
		total += q.Points
		if answers[q.ID] == q.Answer {
			earned += q.Points
		}
	}
	if total == 0 {
		return 0, nil
	}
	return util.Round2(earned / total * 100), nil
}

type AssessmentService struct {
	Repo       *repository.AssessmentRepository
	Enrollment *EnrollmentService
	Score      Scorer
	DB         *gorm.DB
}

func NewAssessmentService(repo *repository.AssessmentRepository, enrollment *EnrollmentService, db *gorm.DB) *AssessmentService {
	return &AssessmentService{
		Repo:       repo,
		Enrollment: enrollment,
		Score:      DefaultScorer,
		DB:         db,
	}
}

type AssessmentRequest struct {
	ProgramID uint            `json:"programId" binding:"required"`
	Title     string          `json:"title" binding:"required"`
	Config    json.RawMessage `json:"config" binding:"required"`
}

// validateConfig rejects a config without at least one well-formed
// question, so every stored assessment is scoreable.
func validateConfig(raw []byte) (*model.AssessmentConfig, error) {
	var cfg model.AssessmentConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrInvalidConfig, err)
	}
	if len(cfg.Questions) == 0 {
		return nil, fmt.Errorf("%w: question list is empty", util.ErrInvalidConfig)
	}
	for i, q := range cfg.Questions {
		if q.ID == "" {
			return nil, fmt.Errorf("%w: question %d has no id", util.ErrInvalidConfig, i)
		}
		if q.Points <= 0 {
			return nil, fmt.Errorf("%w: question %q has non-positive points", util.ErrInvalidConfig, q.ID)
		}
	}
	return &cfg, nil
}

func (s *AssessmentService) CreateAssessment(ctx context.Context, req AssessmentRequest) (*model.Assessment, error) {
	if _, err := validateConfig(req.Config); err != nil {
		return nil, err
	}

	ctx, cancel := storeCtx(ctx)
	defer cancel()

	a := &model.Assessment{
		ProgramID: req.ProgramID,
		Title:     req.Title,
		Config:    datatypes.JSON(req.Config),
	}
	if err := s.Repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AssessmentService) UpdateAssessment(ctx context.Context, id uint, req AssessmentRequest) (*model.Assessment, error) {
	if _, err := validateConfig(req.Config); err != nil {
		return nil, err
	}

	ctx, cancel := storeCtx(ctx)
	defer cancel()

	a, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssessmentMissing
		}
		return nil, err
	}

	a.Title = req.Title
	a.Config = datatypes.JSON(req.Config)
	if req.ProgramID != 0 {
		a.ProgramID = req.ProgramID
	}
	if err := s.Repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AssessmentService) GetAssessment(ctx context.Context, id uint) (*model.Assessment, error) {
	ctx, cancel := storeCtx(ctx)
	defer cancel()

	a, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssessmentMissing
		}
		return nil, err
	}
	return a, nil
}

func (s *AssessmentService) ListAssessments(ctx context.Context, programID uint, page, limit int) ([]model.Assessment, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	ctx, cancel := storeCtx(ctx)
	defer cancel()
	return s.Repo.ListForProgram(ctx, programID, page, limit)
}

type SubmitResponseRequest struct {
	Answers map[string]string `json:"answers" binding:"required"`
}

// SubmitResponse scores the answers against the assessment's config,
// stores the immutable response row, and feeds the owning program's
// progress so avg_score reflects the full response set.
func (s *AssessmentService) SubmitResponse(ctx context.Context, assessmentID, studentID uint, req SubmitResponseRequest) (*model.AssessmentResponse, error) {
	ctx, cancel := storeCtx(ctx)
	defer cancel()

	assessment, err := s.Repo.FindByID(ctx, assessmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssessmentMissing
		}
		return nil, err
	}

	cfg, err := validateConfig(assessment.Config)
	if err != nil {
		return nil, err
	}

	score, err := s.Score(*cfg, req.Answers)
	if err != nil {
		return nil, err
	}

	answersJSON, err := json.Marshal(req.Answers)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrInvalidConfig, err)
	}

	resp := &model.AssessmentResponse{
		AssessmentID: assessmentID,
		StudentID:    studentID,
		Answers:      answersJSON,
		Score:        score,
	}
	if err := s.Repo.CreateResponse(s.DB.WithContext(ctx), resp); err != nil {
		return nil, err
	}

	// Progress only aggregates scores through the response set, so the
	// lesson delta here is zero. The response row is already committed;
	// a failed refresh is logged, and the next recorded activity rebuilds
	// avg_score from the full response set.
	if _, err := s.Enrollment.RecordActivity(ctx, studentID, assessment.ProgramID, 0); err != nil && !util.IsNotFound(err) {
		logger.Log.Warn("progress refresh after response failed",
			zap.Uint("student_id", studentID),
			zap.Uint("program_id", assessment.ProgramID),
			zap.Error(err))
	}

	return resp, nil
}

func (s *AssessmentService) ListResponses(ctx context.Context, assessmentID uint, page, limit int) ([]model.AssessmentResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	ctx, cancel := storeCtx(ctx)
	defer cancel()
	return s.Repo.ListResponses(ctx, assessmentID, page, limit)
}
