package service

import (
	"coachpro_backend/internal/model"
	"coachpro_backend/internal/repository"
	"coachpro_backend/internal/util"
	"context"
	"encoding/json"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProfileService struct {
	Repo *repository.ProfileRepository
}

func NewProfileService(repo *repository.ProfileRepository) *ProfileService {
	return &ProfileService{Repo: repo}
}

type ProfileRequest struct {
	Preferences json.RawMessage `json:"preferences"`
	Goals       json.RawMessage `json:"goals"`
	Tags        json.RawMessage `json:"tags"`
}

// Get returns the newest profile row for the user. The schema allows
// several rows per user, so the newest one is the authoritative view.
func (s *ProfileService) Get(ctx context.Context, userID uint) (*model.Profile, error) {
	ctx, cancel := storeCtx(ctx)
	defer cancel()

	p, err := s.Repo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProfileNotFound
		}
		return nil, err
	}
	return p, nil
}

// Save updates the user's newest profile row, creating one if none
// exists. Empty fields in the request leave the stored value untouched.
func (s *ProfileService) Save(ctx context.Context, userID uint, req ProfileRequest) (*model.Profile, error) {
	ctx, cancel := storeCtx(ctx)
	defer cancel()

	p, err := s.Repo.FindByUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		p = &model.Profile{UserID: userID}
	}

	if len(req.Preferences) > 0 {
		p.Preferences = datatypes.JSON(req.Preferences)
	}
	if len(req.Goals) > 0 {
		p.Goals = datatypes.JSON(req.Goals)
	}
	if len(req.Tags) > 0 {
		p.Tags = datatypes.JSON(req.Tags)
	}

	if p.ID == 0 {
		err = s.Repo.Create(ctx, p)
	} else {
		err = s.Repo.Update(ctx, p)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
