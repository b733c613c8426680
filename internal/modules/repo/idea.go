package repo

import (
	"context"

	"github.com/Renishchandera/gameforge-ai/internal/modules/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IdeaRepo interface {
	Create(ctx context.Context, i *model.Idea) error
	GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.Idea, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Idea, error)
}

type ideaRepo struct{ db *gorm.DB }

func NewIdeaRepo(db *gorm.DB) IdeaRepo {
	return &ideaRepo{db: db}
}

func (r *ideaRepo) Create(ctx context.Context, i *model.Idea) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *ideaRepo) GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.Idea, error) {
	var i model.Idea
	err := r.db.WithContext(ctx).
		Where("id = ? AND created_by = ?", id, ownerID).
		First(&i).Error
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *ideaRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Idea, error) {
	var items []model.Idea
	return items, r.db.WithContext(ctx).
		Where("created_by = ?", ownerID).
		Order("created_at DESC, id DESC").
		Find(&items).Error
}
