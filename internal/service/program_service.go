package service

import (
	"coachpro_backend/internal/model"
	"coachpro_backend/internal/repository"
	"coachpro_backend/internal/util"
	"context"
	"errors"

	"gorm.io/gorm"
)

type ProgramService struct {
	Repo *repository.ProgramRepository
}

func NewProgramService(repo *repository.ProgramRepository) *ProgramService {
	return &ProgramService{Repo: repo}
}

type ProgramRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	LessonCount int     `json:"lessonCount"`
	Published   bool    `json:"published"`
}

func (s *ProgramService) Create(ctx context.Context, req ProgramRequest) (*model.Program, error) {
	ctx, cancel := storeCtx(ctx)
	defer cancel()

	p := &model.Program{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		LessonCount: req.LessonCount,
		Published:   req.Published,
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProgramService) Get(ctx context.Context, id uint) (*model.Program, error) {
	ctx, cancel := storeCtx(ctx)
	defer cancel()

	p, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProgramNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *ProgramService) Update(ctx context.Context, id uint, req ProgramRequest) (*model.Program, error) {
	ctx, cancel := storeCtx(ctx)
	defer cancel()

	p, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProgramNotFound
		}
		return nil, err
	}

	p.Title = req.Title
	p.Description = req.Description
	p.Category = req.Category
	p.Price = req.Price
	p.LessonCount = req.LessonCount
	p.Published = req.Published
	if err := s.Repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete soft-deletes the program. Existing enrollments keep their rows;
// readers of a deleted program get a not-found.
func (s *ProgramService) Delete(ctx context.Context, id uint) error {
	ctx, cancel := storeCtx(ctx)
	defer cancel()

	if _, err := s.Repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrProgramNotFound
		}
		return err
	}
	return s.Repo.Delete(ctx, id)
}

func (s *ProgramService) List(ctx context.Context, page, limit int, search string) ([]repository.ProgramListItem, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	ctx, cancel := storeCtx(ctx)
	defer cancel()
	return s.Repo.List(ctx, page, limit, search)
}
