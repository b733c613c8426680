package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Renishchandera/gameforge-ai/internal/config"
	"github.com/Renishchandera/gameforge-ai/internal/infra/httpclient"
	"github.com/Renishchandera/gameforge-ai/internal/modules/model"
	"github.com/Renishchandera/gameforge-ai/internal/modules/repo"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	untitledProjectName  = "Untitled Project"
	promotedDescLen      = 200
	defaultPredictGenre  = "Unknown"
	defaultPredictTarget = "PC"
	defaultTeamSize      = 3
)

// SuccessPredictor is the ML prediction service.
type SuccessPredictor interface {
	PredictSuccess(ctx context.Context, in httpclient.PredictionInput) (*httpclient.PredictionOutput, error)
}

type ProjectService interface {
	CreateManual(ctx context.Context, ownerID uuid.UUID, in CreateProjectInput) (*model.Project, error)
	PromoteIdea(ctx context.Context, ideaID, ownerID uuid.UUID) (*model.Project, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]model.Project, error)
	// Get resolves the source idea when present.
	Get(ctx context.Context, id, ownerID uuid.UUID) (*model.Project, error)
	Update(ctx context.Context, id, ownerID uuid.UUID, in UpdateProjectInput) (*model.Project, error)
	UpdateStatus(ctx context.Context, id, ownerID uuid.UUID, status string) (*model.Project, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
	Stats(ctx context.Context, id, ownerID uuid.UUID) (*ProjectStats, *model.Project, error)
	PredictSuccess(ctx context.Context, id, ownerID uuid.UUID) (*model.SuccessPrediction, error)
}

type projectService struct {
	r         repo.ProjectRepo
	ideaRepo  repo.IdeaRepo
	taskRepo  repo.TaskRepo
	predictor SuccessPredictor
	events    eventSink
	cfg       *config.Config
	log       *zap.Logger
	now       func() time.Time
}

func NewProjectService(r repo.ProjectRepo, ideaRepo repo.IdeaRepo, taskRepo repo.TaskRepo, predictor SuccessPredictor, publisher EventPublisher, cfg *config.Config, log *zap.Logger) ProjectService {
	return &projectService{
		r:         r,
		ideaRepo:  ideaRepo,
		taskRepo:  taskRepo,
		predictor: predictor,
		events:    eventSink{publisher: publisher, cfg: cfg, log: log},
		cfg:       cfg,
		log:       log,
		now:       time.Now,
	}
}

type CreateProjectInput struct {
	Name           string
	Description    string
	Genres         []string
	Platforms      []string
	TargetAudience string
	CoreMechanic   string
	ArtStyle       string
	Monetization   string
	Status         string
}

// UpdateProjectInput lists every patchable field. Nil leaves a field unchanged.
type UpdateProjectInput struct {
	Name           *string
	Description    *string
	Genres         []string
	Platforms      []string
	TargetAudience *string
	CoreMechanic   *string
	ArtStyle       *string
	Monetization   *string
	Status         *string
}

type PriorityStats struct {
	Low    int64 `json:"low"`
	Medium int64 `json:"medium"`
	High   int64 `json:"high"`
}

type ProjectStats struct {
	Total                int64         `json:"total"`
	Todo                 int64         `json:"todo"`
	InProgress           int64         `json:"inProgress"`
	Done                 int64         `json:"done"`
	ByPriority           PriorityStats `json:"byPriority"`
	CompletionPercentage int           `json:"completionPercentage"`
}

func orEmpty(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

func (s *projectService) CreateManual(ctx context.Context, ownerID uuid.UUID, in CreateProjectInput) (*model.Project, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrProjectNameRequired
	}
	status := in.Status
	if status == "" {
		status = model.ProjectStatusConcept
	}
	if !model.IsProjectStatus(status) {
		return nil, ErrInvalidStatus
	}

	p := &model.Project{
		Name:           name,
		Description:    in.Description,
		Genres:         orEmpty(in.Genres),
		Platforms:      orEmpty(in.Platforms),
		TargetAudience: in.TargetAudience,
		CoreMechanic:   in.CoreMechanic,
		ArtStyle:       in.ArtStyle,
		Monetization:   in.Monetization,
		Status:         status,
		OwnerID:        ownerID,
	}
	if err := s.r.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return p, nil
}

func (s *projectService) PromoteIdea(ctx context.Context, ideaID, ownerID uuid.UUID) (*model.Project, error) {
	idea, err := s.ideaRepo.GetOwned(ctx, ideaID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIdeaNotFound
		}
		return nil, fmt.Errorf("get idea: %w", err)
	}
	if idea.IsConvertedToProject {
		return nil, ErrIdeaAlreadyConverted
	}

	name := strings.TrimSpace(idea.Title)
	if name == "" {
		name = untitledProjectName
	}
	p := &model.Project{
		Name:           name,
		Description:    truncateRunes(idea.Content, promotedDescLen),
		Genres:         orEmpty(idea.Genres),
		Platforms:      orEmpty(idea.Platforms),
		TargetAudience: idea.TargetAudience,
		CoreMechanic:   idea.CoreMechanic,
		ArtStyle:       idea.ArtStyle,
		Monetization:   idea.Monetization,
		Status:         model.ProjectStatusConcept,
		SourceIdeaID:   &idea.ID,
		OwnerID:        ownerID,
	}
	if err := s.r.CreateFromIdea(ctx, p); err != nil {
		if errors.Is(err, repo.ErrAlreadyConverted) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrIdeaAlreadyConverted
		}
		return nil, fmt.Errorf("promote idea: %w", err)
	}

	s.events.emit(ctx, s.cfg.RabbitMQ.RoutingKey.IdeaPromoted, IdeaPromotedMQ{
		IdeaID:    idea.ID,
		ProjectID: p.ID,
		OwnerID:   ownerID,
	})
	return p, nil
}

func (s *projectService) List(ctx context.Context, ownerID uuid.UUID) ([]model.Project, error) {
	items, err := s.r.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return items, nil
}

func (s *projectService) Get(ctx context.Context, id, ownerID uuid.UUID) (*model.Project, error) {
	return s.getOwned(ctx, id, ownerID, true)
}

func (s *projectService) getOwned(ctx context.Context, id, ownerID uuid.UUID, withIdea bool) (*model.Project, error) {
	p, err := s.r.GetOwned(ctx, id, ownerID, withIdea)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

func (s *projectService) Update(ctx context.Context, id, ownerID uuid.UUID, in UpdateProjectInput) (*model.Project, error) {
	updates := map[string]any{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, ErrProjectNameRequired
		}
		updates["name"] = name
	}
	if in.Status != nil {
		if !model.IsProjectStatus(*in.Status) {
			return nil, ErrInvalidStatus
		}
		updates["status"] = *in.Status
	}
	setText := func(col string, v *string) {
		if v != nil {
			updates[col] = *v
		}
	}
	setText("description", in.Description)
	setText("target_audience", in.TargetAudience)
	setText("core_mechanic", in.CoreMechanic)
	setText("art_style", in.ArtStyle)
	setText("monetization", in.Monetization)
	// list writes retire the legacy scalar column
	if in.Genres != nil {
		updates["genres"] = datatypes.JSONSlice[string](in.Genres)
		updates["genre"] = nil
	}
	if in.Platforms != nil {
		updates["platforms"] = datatypes.JSONSlice[string](in.Platforms)
		updates["platform"] = nil
	}

	if len(updates) == 0 {
		return s.getOwned(ctx, id, ownerID, false)
	}
	p, err := s.r.UpdateOwned(ctx, id, ownerID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("update project: %w", err)
	}
	if in.Status != nil {
		s.emitStatus(ctx, p)
	}
	return p, nil
}

func (s *projectService) UpdateStatus(ctx context.Context, id, ownerID uuid.UUID, status string) (*model.Project, error) {
	if !model.IsProjectStatus(status) {
		return nil, ErrInvalidStatus
	}
	p, err := s.r.UpdateOwned(ctx, id, ownerID, map[string]any{"status": status})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("update project status: %w", err)
	}
	s.emitStatus(ctx, p)
	return p, nil
}

func (s *projectService) emitStatus(ctx context.Context, p *model.Project) {
	s.events.emit(ctx, s.cfg.RabbitMQ.RoutingKey.ProjectStatusChanged, ProjectStatusChangedMQ{
		ProjectID: p.ID,
		OwnerID:   p.OwnerID,
		Status:    p.Status,
	})
}

func (s *projectService) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	if err := s.r.DeleteOwned(ctx, id, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("delete project: %w", err)
	}
	s.events.emit(ctx, s.cfg.RabbitMQ.RoutingKey.ProjectDeleted, ProjectDeletedMQ{
		ProjectID: id,
		OwnerID:   ownerID,
	})
	return nil
}

func (s *projectService) Stats(ctx context.Context, id, ownerID uuid.UUID) (*ProjectStats, *model.Project, error) {
	p, err := s.getOwned(ctx, id, ownerID, false)
	if err != nil {
		return nil, nil, err
	}

	byStatus, err := s.taskRepo.CountByStatus(ctx, p.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("count tasks by status: %w", err)
	}
	byPriority, err := s.taskRepo.CountByPriority(ctx, p.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("count tasks by priority: %w", err)
	}

	st := &ProjectStats{
		Todo:       byStatus[model.TaskStatusTodo],
		InProgress: byStatus[model.TaskStatusInProgress],
		Done:       byStatus[model.TaskStatusDone],
		ByPriority: PriorityStats{
			Low:    byPriority[model.TaskPriorityLow],
			Medium: byPriority[model.TaskPriorityMedium],
			High:   byPriority[model.TaskPriorityHigh],
		},
	}
	st.Total = st.Todo + st.InProgress + st.Done
	st.CompletionPercentage = CompletionPercentage(st.Done, st.Total)
	return st, p, nil
}

// CompletionPercentage is round(done/total*100), or 0 for an empty project.
func CompletionPercentage(done, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}

func (s *projectService) PredictSuccess(ctx context.Context, id, ownerID uuid.UUID) (*model.SuccessPrediction, error) {
	p, err := s.getOwned(ctx, id, ownerID, false)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out, err := s.predictor.PredictSuccess(ctx, PredictionInputFor(p, now))
	if err != nil {
		s.log.Error("ML prediction error", zap.String("project_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrPredictionFailed, err)
	}

	pred := &model.SuccessPrediction{
		Probability:  out.SuccessProbability,
		Confidence:   out.Confidence,
		Verdict:      out.Verdict,
		ModelVersion: out.ModelVersion,
		PredictedAt:  now.UTC(),
	}
	if err := s.r.SavePrediction(ctx, p.ID, pred); err != nil {
		return nil, fmt.Errorf("save prediction: %w", err)
	}
	return pred, nil
}

// PredictionInputFor maps a project onto the predictor's feature set.
// Release is assumed to be next year and the team an indie team of three.
func PredictionInputFor(p *model.Project, now time.Time) httpclient.PredictionInput {
	in := httpclient.PredictionInput{
		Genre:         defaultPredictGenre,
		Platform:      defaultPredictTarget,
		ReleaseYear:   now.Year() + 1,
		IsMultiplayer: strings.Contains(strings.ToLower(p.CoreMechanic), "multiplayer"),
		TeamSize:      defaultTeamSize,
	}
	if len(p.Genres) > 0 && p.Genres[0] != "" {
		in.Genre = p.Genres[0]
	}
	if len(p.Platforms) > 0 && p.Platforms[0] != "" {
		in.Platform = p.Platforms[0]
	}
	return in
}
