package service

import (
	"coachpro_backend/internal/model"
	"coachpro_backend/internal/repository"
	"coachpro_backend/internal/util"
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"
)

type RecommendationService struct {
	Repo         *repository.RecommendationRepository
	ProgressRepo *repository.ProgressRepository
	SettingRepo  *repository.SettingRepository
}

func NewRecommendationService(
	repo *repository.RecommendationRepository,
	progressRepo *repository.ProgressRepository,
	settingRepo *repository.SettingRepository,
) *RecommendationService {
	return &RecommendationService{
		Repo:         repo,
		ProgressRepo: progressRepo,
		SettingRepo:  settingRepo,
	}
}

// loadRules reads the configured rules document. Settings are seeded at
// migration, so a missing row is treated as an empty rule list.
func (s *RecommendationService) loadRules(ctx context.Context) ([]model.RecommendationRule, error) {
	doc, err := s.SettingRepo.Get(ctx, model.SettingRules)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	rules, err := model.ParseRules([]byte(doc))
	if err != nil {
		// A stored document that fails validation means writes bypassed
		// the settings service; surface it rather than guessing.
		return nil, util.ErrInvalidRules
	}
	return rules, nil
}

// Evaluate runs the configured rules against the student's progress in
// list order and persists the first match. A nil recommendation with a
// nil error means no rule matched.
func (s *RecommendationService) Evaluate(ctx context.Context, studentID, programID uint) (*model.Recommendation, error) {
	ctx, cancel := storeCtx(ctx)
	defer cancel()

	progress, err := s.ProgressRepo.Find(ctx, studentID, programID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProgressNotFound
		}
		return nil, err
	}

	rules, err := s.loadRules(ctx)
	if err != nil {
		return nil, err
	}

	for i := range rules {
		if !rules[i].When.Eval(progress) {
			continue
		}

		ruleJSON, err := json.Marshal(rules[i])
		if err != nil {
			return nil, err
		}
		outputJSON, err := json.Marshal(rules[i].Then)
		if err != nil {
			return nil, err
		}

		rec := &model.Recommendation{
			StudentID: studentID,
			ProgramID: programID,
			Rule:      ruleJSON,
			Output:    outputJSON,
		}
		if err := s.Repo.Create(ctx, rec); err != nil {
			return nil, err
		}
		return rec, nil
	}

	return nil, nil
}

func (s *RecommendationService) History(ctx context.Context, studentID, programID uint, limit int) ([]model.Recommendation, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}

	ctx, cancel := storeCtx(ctx)
	defer cancel()
	return s.Repo.ListForPair(ctx, studentID, programID, limit)
}
