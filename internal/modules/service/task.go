package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Renishchandera/gameforge-ai/internal/modules/model"
	"github.com/Renishchandera/gameforge-ai/internal/modules/repo"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type TaskService interface {
	Create(ctx context.Context, projectID, ownerID uuid.UUID, in CreateTaskInput) (*model.Task, error)
	List(ctx context.Context, projectID, ownerID uuid.UUID) ([]model.Task, error)
	Grouped(ctx context.Context, projectID, ownerID uuid.UUID) (*GroupedTasks, error)
	Update(ctx context.Context, taskID, ownerID uuid.UUID, in UpdateTaskInput) (*model.Task, error)
	Delete(ctx context.Context, taskID, ownerID uuid.UUID) error
	// BatchUpdateStatus is all-or-nothing: one unowned task aborts the whole batch.
	BatchUpdateStatus(ctx context.Context, taskIDs []uuid.UUID, status string, ownerID uuid.UUID) ([]model.Task, error)
}

type taskService struct {
	r           repo.TaskRepo
	projectRepo repo.ProjectRepo
	log         *zap.Logger
}

func NewTaskService(r repo.TaskRepo, projectRepo repo.ProjectRepo, log *zap.Logger) TaskService {
	return &taskService{r: r, projectRepo: projectRepo, log: log}
}

type CreateTaskInput struct {
	Title       string
	Description string
	Status      string
	Priority    string
	DueDate     *time.Time
}

// UpdateTaskInput lists every patchable field. Nil leaves a field unchanged.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	DueDate     *time.Time
}

// GroupedTasks always carries the todo, in-progress and done buckets.
type GroupedTasks struct {
	Grouped map[string][]model.Task `json:"grouped"`
	Total   int                     `json:"total"`
}

func (s *taskService) ownedProject(ctx context.Context, projectID, ownerID uuid.UUID) (*model.Project, error) {
	p, err := s.projectRepo.GetOwned(ctx, projectID, ownerID, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// ownedTask resolves task -> project -> owner. A task in someone else's
// project is reported exactly like a missing one.
func (s *taskService) ownedTask(ctx context.Context, taskID, ownerID uuid.UUID) (*model.Task, error) {
	t, err := s.r.GetWithProject(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	if t.Project == nil || t.Project.OwnerID != ownerID {
		return nil, ErrTaskNotFound
	}
	return t, nil
}

func (s *taskService) Create(ctx context.Context, projectID, ownerID uuid.UUID, in CreateTaskInput) (*model.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, ErrTaskTitleRequired
	}
	if in.Status != "" && !model.IsTaskStatus(in.Status) {
		return nil, ErrInvalidStatus
	}
	if in.Priority != "" && !model.IsTaskPriority(in.Priority) {
		return nil, ErrInvalidPriority
	}
	if _, err := s.ownedProject(ctx, projectID, ownerID); err != nil {
		return nil, err
	}

	t := &model.Task{
		ProjectID:   projectID,
		Title:       title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
	}
	if err := s.r.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return t, nil
}

func (s *taskService) List(ctx context.Context, projectID, ownerID uuid.UUID) ([]model.Task, error) {
	if _, err := s.ownedProject(ctx, projectID, ownerID); err != nil {
		return nil, err
	}
	items, err := s.r.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return items, nil
}

func (s *taskService) Grouped(ctx context.Context, projectID, ownerID uuid.UUID) (*GroupedTasks, error) {
	if _, err := s.ownedProject(ctx, projectID, ownerID); err != nil {
		return nil, err
	}
	items, err := s.r.ListByProjectPriority(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return GroupTasks(items), nil
}

// GroupTasks partitions tasks by status, keeping their order.
func GroupTasks(items []model.Task) *GroupedTasks {
	grouped := make(map[string][]model.Task, len(model.TaskStatuses))
	for _, st := range model.TaskStatuses {
		grouped[st] = []model.Task{}
	}
	for _, t := range items {
		if _, ok := grouped[t.Status]; ok {
			grouped[t.Status] = append(grouped[t.Status], t)
		}
	}
	return &GroupedTasks{Grouped: grouped, Total: len(items)}
}

func (s *taskService) Update(ctx context.Context, taskID, ownerID uuid.UUID, in UpdateTaskInput) (*model.Task, error) {
	updates := map[string]any{}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, ErrTaskTitleRequired
		}
		updates["title"] = title
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Status != nil {
		if !model.IsTaskStatus(*in.Status) {
			return nil, ErrInvalidStatus
		}
		updates["status"] = *in.Status
	}
	if in.Priority != nil {
		if !model.IsTaskPriority(*in.Priority) {
			return nil, ErrInvalidPriority
		}
		updates["priority"] = *in.Priority
	}
	if in.DueDate != nil {
		updates["due_date"] = *in.DueDate
	}

	if _, err := s.ownedTask(ctx, taskID, ownerID); err != nil {
		return nil, err
	}
	t, err := s.r.Update(ctx, taskID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("update task: %w", err)
	}
	return t, nil
}

func (s *taskService) Delete(ctx context.Context, taskID, ownerID uuid.UUID) error {
	if _, err := s.ownedTask(ctx, taskID, ownerID); err != nil {
		return err
	}
	if err := s.r.Delete(ctx, taskID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

func (s *taskService) BatchUpdateStatus(ctx context.Context, taskIDs []uuid.UUID, status string, ownerID uuid.UUID) ([]model.Task, error) {
	if len(taskIDs) == 0 {
		return nil, ErrTaskIDsRequired
	}
	if !model.IsTaskStatus(status) {
		return nil, ErrInvalidStatus
	}

	found, err := s.r.ListByIDsWithProject(ctx, taskIDs)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	if len(found) == 0 {
		return nil, ErrTaskNotFound
	}

	ids := make([]uuid.UUID, 0, len(found))
	for _, t := range found {
		if t.Project == nil || t.Project.OwnerID != ownerID {
			s.log.Warn("batch status update rejected",
				zap.String("owner_id", ownerID.String()),
				zap.String("task_id", t.ID.String()))
			return nil, ErrForbidden
		}
		ids = append(ids, t.ID)
	}

	items, err := s.r.BulkUpdateStatus(ctx, ids, status)
	if err != nil {
		return nil, fmt.Errorf("bulk update status: %w", err)
	}
	return items, nil
}
