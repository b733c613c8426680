package repo

import (
	"context"

	"github.com/Renishchandera/gameforge-ai/internal/modules/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// priorityOrder sorts high > medium > low, then newest first.
const priorityOrder = "CASE priority WHEN 'high' THEN 3 WHEN 'medium' THEN 2 WHEN 'low' THEN 1 ELSE 0 END DESC, created_at DESC, id DESC"

type TaskRepo interface {
	Create(ctx context.Context, t *model.Task) error
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Task, error)
	ListByProjectPriority(ctx context.Context, projectID uuid.UUID) ([]model.Task, error)
	// GetWithProject loads the task with its parent project for two-hop ownership checks.
	GetWithProject(ctx context.Context, id uuid.UUID) (*model.Task, error)
	ListByIDsWithProject(ctx context.Context, ids []uuid.UUID) ([]model.Task, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*model.Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
	BulkUpdateStatus(ctx context.Context, ids []uuid.UUID, status string) ([]model.Task, error)
	CountByStatus(ctx context.Context, projectID uuid.UUID) (map[string]int64, error)
	CountByPriority(ctx context.Context, projectID uuid.UUID) (map[string]int64, error)
}

type taskRepo struct{ db *gorm.DB }

func NewTaskRepo(db *gorm.DB) TaskRepo {
	return &taskRepo{db: db}
}

func (r *taskRepo) Create(ctx context.Context, t *model.Task) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *taskRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Task, error) {
	var items []model.Task
	return items, r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC, id DESC").
		Find(&items).Error
}

func (r *taskRepo) ListByProjectPriority(ctx context.Context, projectID uuid.UUID) ([]model.Task, error) {
	var items []model.Task
	return items, r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order(priorityOrder).
		Find(&items).Error
}

func (r *taskRepo) GetWithProject(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var t model.Task
	if err := r.db.WithContext(ctx).Preload("Project").Where("id = ?", id).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *taskRepo) ListByIDsWithProject(ctx context.Context, ids []uuid.UUID) ([]model.Task, error) {
	var items []model.Task
	if len(ids) == 0 {
		return items, nil
	}
	return items, r.db.WithContext(ctx).
		Preload("Project").
		Where("id IN ?", ids).
		Find(&items).Error
}

func (r *taskRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*model.Task, error) {
	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	var t model.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *taskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Task{}).Error
}

func (r *taskRepo) BulkUpdateStatus(ctx context.Context, ids []uuid.UUID, status string) ([]model.Task, error) {
	if err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id IN ?", ids).
		Update("status", status).Error; err != nil {
		return nil, err
	}

	var items []model.Task
	return items, r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("created_at DESC, id DESC").
		Find(&items).Error
}

type groupCount struct {
	Bucket string
	Count  int64
}

func (r *taskRepo) countBy(ctx context.Context, projectID uuid.UUID, column string) (map[string]int64, error) {
	var rows []groupCount
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Select(column+" AS bucket, COUNT(*) AS count").
		Where("project_id = ?", projectID).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Bucket] = row.Count
	}
	return out, nil
}

func (r *taskRepo) CountByStatus(ctx context.Context, projectID uuid.UUID) (map[string]int64, error) {
	return r.countBy(ctx, projectID, "status")
}

func (r *taskRepo) CountByPriority(ctx context.Context, projectID uuid.UUID) (map[string]int64, error) {
	return r.countBy(ctx, projectID, "priority")
}
