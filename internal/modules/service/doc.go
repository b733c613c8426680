package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Renishchandera/gameforge-ai/internal/modules/model"
	"github.com/Renishchandera/gameforge-ai/internal/modules/repo"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocService interface {
	Create(ctx context.Context, projectID, ownerID uuid.UUID, in CreateDocInput) (*model.Doc, error)
	List(ctx context.Context, projectID, ownerID uuid.UUID) ([]model.Doc, error)
	Get(ctx context.Context, docID, ownerID uuid.UUID) (*model.Doc, error)
	Update(ctx context.Context, docID, ownerID uuid.UUID, in UpdateDocInput) (*model.Doc, error)
	Delete(ctx context.Context, docID, ownerID uuid.UUID) error
}

type docService struct {
	r           repo.DocRepo
	projectRepo repo.ProjectRepo
}

func NewDocService(r repo.DocRepo, projectRepo repo.ProjectRepo) DocService {
	return &docService{r: r, projectRepo: projectRepo}
}

type CreateDocInput struct {
	Type          string
	Title         string
	Content       string
	GeneratedByAI bool
}

type UpdateDocInput struct {
	Type          *string
	Title         *string
	Content       *string
	GeneratedByAI *bool
}

func (s *docService) Create(ctx context.Context, projectID, ownerID uuid.UUID, in CreateDocInput) (*model.Doc, error) {
	if !model.IsDocType(in.Type) {
		return nil, ErrInvalidDocType
	}
	if err := s.checkProject(ctx, projectID, ownerID); err != nil {
		return nil, err
	}

	d := &model.Doc{
		ProjectID:     projectID,
		Type:          in.Type,
		Title:         in.Title,
		Content:       in.Content,
		GeneratedByAI: in.GeneratedByAI,
	}
	if err := s.r.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("create doc: %w", err)
	}
	return d, nil
}

func (s *docService) List(ctx context.Context, projectID, ownerID uuid.UUID) ([]model.Doc, error) {
	if err := s.checkProject(ctx, projectID, ownerID); err != nil {
		return nil, err
	}
	items, err := s.r.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list docs: %w", err)
	}
	return items, nil
}

func (s *docService) Get(ctx context.Context, docID, ownerID uuid.UUID) (*model.Doc, error) {
	return s.ownedDoc(ctx, docID, ownerID)
}

func (s *docService) Update(ctx context.Context, docID, ownerID uuid.UUID, in UpdateDocInput) (*model.Doc, error) {
	updates := map[string]any{}
	if in.Type != nil {
		if !model.IsDocType(*in.Type) {
			return nil, ErrInvalidDocType
		}
		updates["type"] = *in.Type
	}
	if in.Title != nil {
		updates["title"] = *in.Title
	}
	if in.Content != nil {
		updates["content"] = *in.Content
	}
	if in.GeneratedByAI != nil {
		updates["generated_by_ai"] = *in.GeneratedByAI
	}

	if _, err := s.ownedDoc(ctx, docID, ownerID); err != nil {
		return nil, err
	}
	d, err := s.r.Update(ctx, docID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocNotFound
		}
		return nil, fmt.Errorf("update doc: %w", err)
	}
	return d, nil
}

func (s *docService) Delete(ctx context.Context, docID, ownerID uuid.UUID) error {
	if _, err := s.ownedDoc(ctx, docID, ownerID); err != nil {
		return err
	}
	if err := s.r.Delete(ctx, docID); err != nil {
		return fmt.Errorf("delete doc: %w", err)
	}
	return nil
}

func (s *docService) checkProject(ctx context.Context, projectID, ownerID uuid.UUID) error {
	if _, err := s.projectRepo.GetOwned(ctx, projectID, ownerID, false); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("get project: %w", err)
	}
	return nil
}

func (s *docService) ownedDoc(ctx context.Context, docID, ownerID uuid.UUID) (*model.Doc, error) {
	d, err := s.r.GetWithProject(ctx, docID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocNotFound
		}
		return nil, fmt.Errorf("get doc: %w", err)
	}
	if d.Project == nil || d.Project.OwnerID != ownerID {
		return nil, ErrDocNotFound
	}
	d.Project = nil
	return d, nil
}
