package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Renishchandera/gameforge-ai/internal/llm"
	"github.com/Renishchandera/gameforge-ai/internal/middleware"
	"github.com/Renishchandera/gameforge-ai/internal/modules/model"
	"github.com/Renishchandera/gameforge-ai/internal/modules/serializer"
	"github.com/Renishchandera/gameforge-ai/internal/modules/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, in service.RegisterInput) (*service.AuthResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, in service.LoginInput) (*service.AuthResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

func (m *MockAuthService) Authenticate(ctx context.Context, accessToken string) (*model.User, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type MockIdeaService struct {
	mock.Mock
}

func (m *MockIdeaService) Generate(ctx context.Context, attrs llm.IdeaAttributes) (string, error) {
	args := m.Called(ctx, attrs)
	return args.String(0), args.Error(1)
}

func (m *MockIdeaService) Feasibility(ctx context.Context, idea string) (*llm.Feasibility, error) {
	args := m.Called(ctx, idea)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*llm.Feasibility), args.Error(1)
}

func (m *MockIdeaService) Create(ctx context.Context, ownerID uuid.UUID, in service.CreateIdeaInput) (*model.Idea, error) {
	args := m.Called(ctx, ownerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Idea), args.Error(1)
}

func (m *MockIdeaService) ListSaved(ctx context.Context, ownerID uuid.UUID) ([]model.Idea, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Idea), args.Error(1)
}

type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) CreateManual(ctx context.Context, ownerID uuid.UUID, in service.CreateProjectInput) (*model.Project, error) {
	args := m.Called(ctx, ownerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) PromoteIdea(ctx context.Context, ideaID, ownerID uuid.UUID) (*model.Project, error) {
	args := m.Called(ctx, ideaID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) List(ctx context.Context, ownerID uuid.UUID) ([]model.Project, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *MockProjectService) Get(ctx context.Context, id, ownerID uuid.UUID) (*model.Project, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) Update(ctx context.Context, id, ownerID uuid.UUID, in service.UpdateProjectInput) (*model.Project, error) {
	args := m.Called(ctx, id, ownerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) UpdateStatus(ctx context.Context, id, ownerID uuid.UUID, status string) (*model.Project, error) {
	args := m.Called(ctx, id, ownerID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

func (m *MockProjectService) Stats(ctx context.Context, id, ownerID uuid.UUID) (*service.ProjectStats, *model.Project, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*service.ProjectStats), args.Get(1).(*model.Project), args.Error(2)
}

func (m *MockProjectService) PredictSuccess(ctx context.Context, id, ownerID uuid.UUID) (*model.SuccessPrediction, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SuccessPrediction), args.Error(1)
}

type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) Create(ctx context.Context, projectID, ownerID uuid.UUID, in service.CreateTaskInput) (*model.Task, error) {
	args := m.Called(ctx, projectID, ownerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) List(ctx context.Context, projectID, ownerID uuid.UUID) ([]model.Task, error) {
	args := m.Called(ctx, projectID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskService) Grouped(ctx context.Context, projectID, ownerID uuid.UUID) (*service.GroupedTasks, error) {
	args := m.Called(ctx, projectID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.GroupedTasks), args.Error(1)
}

func (m *MockTaskService) Update(ctx context.Context, taskID, ownerID uuid.UUID, in service.UpdateTaskInput) (*model.Task, error) {
	args := m.Called(ctx, taskID, ownerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) Delete(ctx context.Context, taskID, ownerID uuid.UUID) error {
	args := m.Called(ctx, taskID, ownerID)
	return args.Error(0)
}

func (m *MockTaskService) BatchUpdateStatus(ctx context.Context, taskIDs []uuid.UUID, status string, ownerID uuid.UUID) ([]model.Task, error) {
	args := m.Called(ctx, taskIDs, status, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

type MockDocService struct {
	mock.Mock
}

func (m *MockDocService) Create(ctx context.Context, projectID, ownerID uuid.UUID, in service.CreateDocInput) (*model.Doc, error) {
	args := m.Called(ctx, projectID, ownerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Doc), args.Error(1)
}

func (m *MockDocService) List(ctx context.Context, projectID, ownerID uuid.UUID) ([]model.Doc, error) {
	args := m.Called(ctx, projectID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Doc), args.Error(1)
}

func (m *MockDocService) Get(ctx context.Context, docID, ownerID uuid.UUID) (*model.Doc, error) {
	args := m.Called(ctx, docID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Doc), args.Error(1)
}

func (m *MockDocService) Update(ctx context.Context, docID, ownerID uuid.UUID, in service.UpdateDocInput) (*model.Doc, error) {
	args := m.Called(ctx, docID, ownerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Doc), args.Error(1)
}

func (m *MockDocService) Delete(ctx context.Context, docID, ownerID uuid.UUID) error {
	args := m.Called(ctx, docID, ownerID)
	return args.Error(0)
}

type MockIdeaAI struct {
	mock.Mock
}

func (m *MockIdeaAI) GenerateIdea(ctx context.Context, attrs llm.IdeaAttributes) (string, error) {
	args := m.Called(ctx, attrs)
	return args.String(0), args.Error(1)
}

func (m *MockIdeaAI) AssessFeasibility(ctx context.Context, idea string) (*llm.Feasibility, error) {
	args := m.Called(ctx, idea)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*llm.Feasibility), args.Error(1)
}

// testRouter returns an engine whose requests run as user, or anonymously when user is nil.
func testRouter(user *model.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	serializer.SetLogger(zap.NewNop())
	RegisterValidators()

	r := gin.New()
	if user != nil {
		r.Use(func(c *gin.Context) {
			c.Set(middleware.UserKey, user)
			c.Next()
		})
	}
	return r
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			_ = json.NewEncoder(&buf).Encode(b)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) serializer.Response {
	t.Helper()
	var resp serializer.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func dataMap(t *testing.T, resp serializer.Response) map[string]interface{} {
	t.Helper()
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "data is not an object: %#v", resp.Data)
	return data
}
