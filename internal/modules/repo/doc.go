package repo

import (
	"context"

	"github.com/Renishchandera/gameforge-ai/internal/modules/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocRepo interface {
	Create(ctx context.Context, d *model.Doc) error
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Doc, error)
	GetWithProject(ctx context.Context, id uuid.UUID) (*model.Doc, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*model.Doc, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type docRepo struct{ db *gorm.DB }

func NewDocRepo(db *gorm.DB) DocRepo {
	return &docRepo{db: db}
}

func (r *docRepo) Create(ctx context.Context, d *model.Doc) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *docRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Doc, error) {
	var items []model.Doc
	return items, r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC, id DESC").
		Find(&items).Error
}

func (r *docRepo) GetWithProject(ctx context.Context, id uuid.UUID) (*model.Doc, error) {
	var d model.Doc
	if err := r.db.WithContext(ctx).Preload("Project").Where("id = ?", id).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *docRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*model.Doc, error) {
	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).Model(&model.Doc{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	var d model.Doc
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *docRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Doc{}).Error
}
