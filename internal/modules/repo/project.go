package repo

import (
	"context"

	"github.com/Renishchandera/gameforge-ai/internal/modules/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *model.Project) error
	// CreateFromIdea inserts p and flags its source idea as converted in one transaction.
	CreateFromIdea(ctx context.Context, p *model.Project) error
	GetOwned(ctx context.Context, id, ownerID uuid.UUID, withIdea bool) (*model.Project, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Project, error)
	UpdateOwned(ctx context.Context, id, ownerID uuid.UUID, updates map[string]any) (*model.Project, error)
	// DeleteOwned removes the project with its tasks and docs.
	DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error
	SavePrediction(ctx context.Context, id uuid.UUID, pred *model.SuccessPrediction) error
}

type projectRepo struct{ db *gorm.DB }

func NewProjectRepo(db *gorm.DB) ProjectRepo {
	return &projectRepo{db: db}
}

func (r *projectRepo) Create(ctx context.Context, p *model.Project) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *projectRepo) CreateFromIdea(ctx context.Context, p *model.Project) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}

		res := tx.Model(&model.Idea{}).
			Where("id = ? AND created_by = ? AND is_converted_to_project = ?", p.SourceIdeaID, p.OwnerID, false).
			Update("is_converted_to_project", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyConverted
		}
		return nil
	})
}

func (r *projectRepo) GetOwned(ctx context.Context, id, ownerID uuid.UUID, withIdea bool) (*model.Project, error) {
	q := r.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID)
	if withIdea {
		q = q.Preload("Idea")
	}

	var p model.Project
	if err := q.First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *projectRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Project, error) {
	var items []model.Project
	return items, r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("updated_at DESC, id DESC").
		Find(&items).Error
}

func (r *projectRepo) UpdateOwned(ctx context.Context, id, ownerID uuid.UUID, updates map[string]any) (*model.Project, error) {
	res := r.db.WithContext(ctx).Model(&model.Project{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetOwned(ctx, id, ownerID, false)
}

func (r *projectRepo) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.Project{}).Where("id = ? AND owner_id = ?", id, ownerID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("project_id = ?", id).Delete(&model.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&model.Doc{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&model.Project{}).Error
	})
}

func (r *projectRepo) SavePrediction(ctx context.Context, id uuid.UUID, pred *model.SuccessPrediction) error {
	return r.db.WithContext(ctx).Model(&model.Project{ID: id}).
		Select("success_prediction").
		Updates(&model.Project{SuccessPrediction: pred}).Error
}
