package repository

import (
	"coachpro_backend/internal/model"
	"context"

	"gorm.io/gorm"
)

type ProgramRepository struct {
	DB *gorm.DB
}

func NewProgramRepository(db *gorm.DB) *ProgramRepository {
	return &ProgramRepository{DB: db}
}

func (r *ProgramRepository) Create(ctx context.Context, p *model.Program) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *ProgramRepository) FindByID(ctx context.Context, id uint) (*model.Program, error) {
	var p model.Program
	err := r.DB.WithContext(ctx).First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProgramRepository) Update(ctx context.Context, p *model.Program) error {
	return r.DB.WithContext(ctx).Save(p).Error
}

func (r *ProgramRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&model.Program{}, id).Error
}

func (r *ProgramRepository) ListIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	err := r.DB.WithContext(ctx).Model(&model.Program{}).Pluck("id", &ids).Error
	return ids, err
}

// ProgramListItem is one row of the admin programs table.
type ProgramListItem struct {
	model.Program
	Enrollments int `gorm:"column:enrollment_count" json:"enrollments"`
}

func (r *ProgramRepository) List(ctx context.Context, page, limit int, search string) ([]ProgramListItem, int64, error) {
	query := r.DB.WithContext(ctx).Model(&model.Program{})
	if search != "" {
		query = query.Where("title LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []ProgramListItem
	offset := (page - 1) * limit
	err := query.
		Select("programs.*, (SELECT COUNT(*) FROM enrollments WHERE enrollments.program_id = programs.id AND enrollments.deleted_at IS NULL) as enrollment_count").
		Order("created_at desc").
		Offset(offset).Limit(limit).
		Find(&items).Error
	return items, total, err
}
