package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Renishchandera/gameforge-ai/internal/config"
	"github.com/Renishchandera/gameforge-ai/internal/infra/httpclient"
	"github.com/Renishchandera/gameforge-ai/internal/modules/model"
	"github.com/Renishchandera/gameforge-ai/internal/modules/repo"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func testEventConfig() *config.Config {
	return &config.Config{RabbitMQ: config.RabbitMQCfg{
		Exchange: "gameforge.events",
		RoutingKey: config.RoutingKeyCfg{
			IdeaPromoted:         "idea.promoted",
			ProjectStatusChanged: "project.status_changed",
			ProjectDeleted:       "project.deleted",
		},
	}}
}

type projectFixture struct {
	svc       ProjectService
	projects  *MockProjectRepo
	ideas     *MockIdeaRepo
	tasks     *MockTaskRepo
	predictor *MockPredictor
	pub       *MockPublisher
}

func newProjectFixture(withPublisher bool) *projectFixture {
	f := &projectFixture{
		projects:  &MockProjectRepo{},
		ideas:     &MockIdeaRepo{},
		tasks:     &MockTaskRepo{},
		predictor: &MockPredictor{},
		pub:       &MockPublisher{},
	}
	var pub EventPublisher
	if withPublisher {
		pub = f.pub
	}
	f.svc = NewProjectService(f.projects, f.ideas, f.tasks, f.predictor, pub, testEventConfig(), zap.NewNop())
	return f
}

func TestProjectService_CreateManual(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("name required", func(t *testing.T) {
		f := newProjectFixture(false)
		_, err := f.svc.CreateManual(ctx, owner, CreateProjectInput{Name: " "})
		assert.ErrorIs(t, err, ErrProjectNameRequired)
	})

	t.Run("invalid status", func(t *testing.T) {
		f := newProjectFixture(false)
		_, err := f.svc.CreateManual(ctx, owner, CreateProjectInput{Name: "P", Status: "shipped"})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("defaults", func(t *testing.T) {
		f := newProjectFixture(false)
		f.projects.On("Create", ctx, mock.MatchedBy(func(p *model.Project) bool {
			return p.OwnerID == owner && p.Status == model.ProjectStatusConcept &&
				p.Genres != nil && len(p.Genres) == 0
		})).Return(nil)

		p, err := f.svc.CreateManual(ctx, owner, CreateProjectInput{Name: "  Ember  "})
		require.NoError(t, err)
		assert.Equal(t, "Ember", p.Name)
		f.projects.AssertExpectations(t)
	})
}

func TestProjectService_PromoteIdea(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	ideaID := uuid.New()

	t.Run("copies idea fields and emits event", func(t *testing.T) {
		f := newProjectFixture(true)
		idea := &model.Idea{
			ID:           ideaID,
			Content:      strings.Repeat("x", 250),
			Genres:       datatypes.JSONSlice[string]{"Puzzle"},
			Platforms:    datatypes.JSONSlice[string]{"PC"},
			CoreMechanic: "match three",
			CreatedBy:    owner,
		}
		f.ideas.On("GetOwned", ctx, ideaID, owner).Return(idea, nil)
		f.projects.On("CreateFromIdea", ctx, mock.MatchedBy(func(p *model.Project) bool {
			return p.Name == "Untitled Project" &&
				len(p.Description) == 200 &&
				*p.SourceIdeaID == ideaID &&
				p.OwnerID == owner &&
				p.CoreMechanic == "match three" &&
				p.Genres[0] == "Puzzle"
		})).Return(nil)
		f.pub.On("PublishJSON", ctx, "gameforge.events", "idea.promoted", mock.AnythingOfType("service.IdeaPromotedMQ")).Return(nil)

		p, err := f.svc.PromoteIdea(ctx, ideaID, owner)
		require.NoError(t, err)
		assert.Equal(t, ideaID, *p.SourceIdeaID)
		f.projects.AssertExpectations(t)
		f.pub.AssertExpectations(t)
	})

	t.Run("not owned is not found", func(t *testing.T) {
		f := newProjectFixture(false)
		f.ideas.On("GetOwned", ctx, ideaID, owner).Return(nil, gorm.ErrRecordNotFound)

		_, err := f.svc.PromoteIdea(ctx, ideaID, owner)
		assert.ErrorIs(t, err, ErrIdeaNotFound)
	})

	t.Run("already converted", func(t *testing.T) {
		f := newProjectFixture(false)
		f.ideas.On("GetOwned", ctx, ideaID, owner).Return(&model.Idea{ID: ideaID, IsConvertedToProject: true}, nil)

		_, err := f.svc.PromoteIdea(ctx, ideaID, owner)
		assert.ErrorIs(t, err, ErrIdeaAlreadyConverted)
		f.projects.AssertNotCalled(t, "CreateFromIdea", mock.Anything, mock.Anything)
	})

	for name, repoErr := range map[string]error{
		"lost conditional update": repo.ErrAlreadyConverted,
		"unique source idea":      gorm.ErrDuplicatedKey,
	} {
		t.Run(name, func(t *testing.T) {
			f := newProjectFixture(false)
			f.ideas.On("GetOwned", ctx, ideaID, owner).Return(&model.Idea{ID: ideaID, Title: "T", Content: "c"}, nil)
			f.projects.On("CreateFromIdea", ctx, mock.Anything).Return(repoErr)

			_, err := f.svc.PromoteIdea(ctx, ideaID, owner)
			assert.ErrorIs(t, err, ErrIdeaAlreadyConverted)
		})
	}
}

func TestProjectService_PublishFailureIsIgnored(t *testing.T) {
	ctx := context.Background()
	owner, id := uuid.New(), uuid.New()
	f := newProjectFixture(true)
	f.projects.On("DeleteOwned", ctx, id, owner).Return(nil)
	f.pub.On("PublishJSON", ctx, "gameforge.events", "project.deleted", ProjectDeletedMQ{ProjectID: id, OwnerID: owner}).
		Return(errors.New("broker down"))

	assert.NoError(t, f.svc.Delete(ctx, id, owner))
	f.pub.AssertExpectations(t)
}

func TestProjectService_Get(t *testing.T) {
	ctx := context.Background()
	owner, id := uuid.New(), uuid.New()
	f := newProjectFixture(false)
	f.projects.On("GetOwned", ctx, id, owner, true).Return(&model.Project{ID: id}, nil)
	f.projects.On("GetOwned", ctx, id, uuid.Nil, true).Return(nil, gorm.ErrRecordNotFound)

	p, err := f.svc.Get(ctx, id, owner)
	require.NoError(t, err)
	assert.Equal(t, id, p.ID)

	_, err = f.svc.Get(ctx, id, uuid.Nil)
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestProjectService_Update(t *testing.T) {
	ctx := context.Background()
	owner, id := uuid.New(), uuid.New()
	name := "New"
	status := model.ProjectStatusProduction
	bad := "shipped"
	empty := ""

	t.Run("whitelisted columns only", func(t *testing.T) {
		f := newProjectFixture(true)
		f.projects.On("UpdateOwned", ctx, id, owner, map[string]any{
			"name":   "New",
			"status": "production",
			"genres": datatypes.JSONSlice[string]{"RPG"},
			"genre":  nil,
		}).Return(&model.Project{ID: id, OwnerID: owner, Status: status}, nil)
		f.pub.On("PublishJSON", ctx, "gameforge.events", "project.status_changed", mock.Anything).Return(nil)

		p, err := f.svc.Update(ctx, id, owner, UpdateProjectInput{Name: &name, Status: &status, Genres: []string{"RPG"}})
		require.NoError(t, err)
		assert.Equal(t, status, p.Status)
		f.projects.AssertExpectations(t)
	})

	t.Run("empty patch reads back", func(t *testing.T) {
		f := newProjectFixture(false)
		f.projects.On("GetOwned", ctx, id, owner, false).Return(&model.Project{ID: id}, nil)

		_, err := f.svc.Update(ctx, id, owner, UpdateProjectInput{})
		require.NoError(t, err)
		f.projects.AssertNotCalled(t, "UpdateOwned", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("validation", func(t *testing.T) {
		f := newProjectFixture(false)
		_, err := f.svc.Update(ctx, id, owner, UpdateProjectInput{Status: &bad})
		assert.ErrorIs(t, err, ErrInvalidStatus)
		_, err = f.svc.Update(ctx, id, owner, UpdateProjectInput{Name: &empty})
		assert.ErrorIs(t, err, ErrProjectNameRequired)
	})

	t.Run("not owned", func(t *testing.T) {
		f := newProjectFixture(false)
		f.projects.On("UpdateOwned", ctx, id, owner, mock.Anything).Return(nil, gorm.ErrRecordNotFound)
		_, err := f.svc.Update(ctx, id, owner, UpdateProjectInput{Name: &name})
		assert.ErrorIs(t, err, ErrProjectNotFound)
	})
}

func TestProjectService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	owner, id := uuid.New(), uuid.New()
	f := newProjectFixture(false)
	f.projects.On("UpdateOwned", ctx, id, owner, map[string]any{"status": "paused"}).
		Return(&model.Project{ID: id, Status: "paused"}, nil)

	p, err := f.svc.UpdateStatus(ctx, id, owner, "paused")
	require.NoError(t, err)
	assert.Equal(t, "paused", p.Status)

	_, err = f.svc.UpdateStatus(ctx, id, owner, "archived")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCompletionPercentage(t *testing.T) {
	assert.Equal(t, 0, CompletionPercentage(0, 0))
	assert.Equal(t, 100, CompletionPercentage(1, 1))
	assert.Equal(t, 33, CompletionPercentage(1, 3))
	assert.Equal(t, 67, CompletionPercentage(2, 3))
	assert.Equal(t, 50, CompletionPercentage(1, 2))
}

func TestProjectService_Stats(t *testing.T) {
	ctx := context.Background()
	owner, id := uuid.New(), uuid.New()
	f := newProjectFixture(false)
	f.projects.On("GetOwned", ctx, id, owner, false).Return(&model.Project{ID: id}, nil)
	f.tasks.On("CountByStatus", ctx, id).Return(map[string]int64{"todo": 2, "in-progress": 1, "done": 1}, nil)
	f.tasks.On("CountByPriority", ctx, id).Return(map[string]int64{"high": 3, "low": 1}, nil)

	st, p, err := f.svc.Stats(ctx, id, owner)
	require.NoError(t, err)
	assert.Equal(t, id, p.ID)
	assert.Equal(t, &ProjectStats{
		Total: 4, Todo: 2, InProgress: 1, Done: 1,
		ByPriority:           PriorityStats{Low: 1, Medium: 0, High: 3},
		CompletionPercentage: 25,
	}, st)
	assert.Equal(t, st.Total, st.Todo+st.InProgress+st.Done)
}

func TestPredictionInputFor(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	in := PredictionInputFor(&model.Project{}, now)
	assert.Equal(t, httpclient.PredictionInput{Genre: "Unknown", Platform: "PC", ReleaseYear: 2027, TeamSize: 3}, in)

	in = PredictionInputFor(&model.Project{
		Genres:       datatypes.JSONSlice[string]{"Shooter", "RPG"},
		Platforms:    datatypes.JSONSlice[string]{"Switch"},
		CoreMechanic: "Online Multiplayer arena",
	}, now)
	assert.Equal(t, "Shooter", in.Genre)
	assert.Equal(t, "Switch", in.Platform)
	assert.True(t, in.IsMultiplayer)
}

func TestProjectService_PredictSuccess(t *testing.T) {
	ctx := context.Background()
	owner, id := uuid.New(), uuid.New()

	t.Run("persists prediction", func(t *testing.T) {
		f := newProjectFixture(false)
		f.projects.On("GetOwned", ctx, id, owner, false).Return(&model.Project{ID: id, OwnerID: owner}, nil)
		f.predictor.On("PredictSuccess", ctx, mock.AnythingOfType("httpclient.PredictionInput")).
			Return(&httpclient.PredictionOutput{SuccessProbability: 72.5, Confidence: "high", Verdict: "Likely Success", ModelVersion: "v1"}, nil)
		f.projects.On("SavePrediction", ctx, id, mock.MatchedBy(func(p *model.SuccessPrediction) bool {
			return p.Probability == 72.5 && p.ModelVersion == "v1" && !p.PredictedAt.IsZero()
		})).Return(nil)

		pred, err := f.svc.PredictSuccess(ctx, id, owner)
		require.NoError(t, err)
		assert.Equal(t, "Likely Success", pred.Verdict)
		f.projects.AssertExpectations(t)
	})

	t.Run("predictor failure", func(t *testing.T) {
		f := newProjectFixture(false)
		f.projects.On("GetOwned", ctx, id, owner, false).Return(&model.Project{ID: id}, nil)
		f.predictor.On("PredictSuccess", ctx, mock.Anything).Return(nil, errors.New("connection refused"))

		_, err := f.svc.PredictSuccess(ctx, id, owner)
		assert.ErrorIs(t, err, ErrPredictionFailed)
		f.projects.AssertNotCalled(t, "SavePrediction", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("not owned", func(t *testing.T) {
		f := newProjectFixture(false)
		f.projects.On("GetOwned", ctx, id, owner, false).Return(nil, gorm.ErrRecordNotFound)

		_, err := f.svc.PredictSuccess(ctx, id, owner)
		assert.ErrorIs(t, err, ErrProjectNotFound)
	})
}
