package service

import (
	"coachpro_backend/internal/model"
	"coachpro_backend/internal/repository"
	"coachpro_backend/internal/util"
	"context"
	"fmt"
)

type SettingsService struct {
	Repo *repository.SettingRepository
}

func NewSettingsService(repo *repository.SettingRepository) *SettingsService {
	return &SettingsService{Repo: repo}
}

// GetAll returns every setting, filling defaults for keys that have no
// stored row yet.
func (s *SettingsService) GetAll(ctx context.Context) (map[string]string, error) {
	ctx, cancel := storeCtx(ctx)
	defer cancel()

	stored, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(model.SettingDefaults))
	for key, def := range model.SettingDefaults {
		if v, ok := stored[key]; ok {
			out[key] = v
		} else {
			out[key] = def
		}
	}
	return out, nil
}

// Save writes the given settings. Unknown keys are rejected and the
// rules document must validate before anything is written, so a bad
// batch changes nothing.
func (s *SettingsService) Save(ctx context.Context, values map[string]string) error {
	for key, value := range values {
		if _, ok := model.SettingDefaults[key]; !ok {
			return fmt.Errorf("%w: %q", util.ErrSettingsUnknown, key)
		}
		if key == model.SettingRules {
			if _, err := model.ParseRules([]byte(value)); err != nil {
				return fmt.Errorf("%w: %v", util.ErrInvalidRules, err)
			}
		}
	}

	ctx, cancel := storeCtx(ctx)
	defer cancel()

	for key, value := range values {
		if err := s.Repo.Set(ctx, key, value); err != nil {
			return err
		}
	}
	return nil
}
