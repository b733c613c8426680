package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Renishchandera/gameforge-ai/internal/config"
	"github.com/Renishchandera/gameforge-ai/internal/middleware"
	"github.com/Renishchandera/gameforge-ai/internal/modules/handler"
	"github.com/Renishchandera/gameforge-ai/internal/modules/serializer"
	"github.com/Renishchandera/gameforge-ai/internal/modules/service"
)

type RouterDeps struct {
	Config         *config.Config
	Log            *zap.Logger
	AuthService    service.AuthService
	AuthHandler    *handler.AuthHandler
	IdeaHandler    *handler.IdeaHandler
	ProjectHandler *handler.ProjectHandler
	TaskHandler    *handler.TaskHandler
	DocHandler     *handler.DocHandler
}

// base sets up the middleware chain shared by the API and gateway engines.
func base(cfg *config.Config, log *zap.Logger) *gin.Engine {
	// Initialize logger for serializer package
	serializer.SetLogger(log)
	handler.RegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery())

	if cfg.Telemetry.Enabled && cfg.Telemetry.OtlpEndpoint != "" {
		r.Use(middleware.OtelTracing(cfg.App.Name))
		// Add trace ID to response header
		r.Use(middleware.TraceID())
	}

	r.Use(middleware.ZapLogger(log))

	// health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "ok"}) })
	return r
}

func NewRouter(d RouterDeps) *gin.Engine {
	r := base(d.Config, d.Log)
	r.Use(middleware.CORS(d.Config.CORS.AllowOrigins))

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", d.AuthHandler.Register)
			auth.POST("/login", d.AuthHandler.Login)
			auth.POST("/refresh", d.AuthHandler.Refresh)
			auth.POST("/logout", d.AuthHandler.Logout)
		}

		private := api.Group("")
		private.Use(middleware.UserAuth(d.AuthService))

		idea := private.Group("/idea")
		{
			idea.POST("/generate", d.IdeaHandler.GenerateIdea)
			idea.POST("/feasibility", d.IdeaHandler.AssessFeasibility)
			idea.POST("/save", d.IdeaHandler.SaveIdea)
			idea.GET("/saved", d.IdeaHandler.ListSaved)
		}

		projects := private.Group("/projects")
		{
			projects.POST("", d.ProjectHandler.CreateProject)
			projects.GET("", d.ProjectHandler.ListProjects)
			projects.POST("/from-idea/:ideaId", d.ProjectHandler.PromoteIdea)

			projects.GET("/:id", d.ProjectHandler.GetProject)
			projects.PUT("/:id", d.ProjectHandler.UpdateProject)
			projects.DELETE("/:id", d.ProjectHandler.DeleteProject)
			projects.PATCH("/:id/status", d.ProjectHandler.UpdateStatus)
			projects.GET("/:id/stats", d.ProjectHandler.GetStats)

			projects.POST("/:id/tasks", d.TaskHandler.CreateTask)
			projects.GET("/:id/tasks", d.TaskHandler.ListTasks)
			projects.GET("/:id/tasks/grouped", d.TaskHandler.GroupedTasks)

			projects.POST("/:id/docs", d.DocHandler.CreateDoc)
			projects.GET("/:id/docs", d.DocHandler.ListDocs)
		}

		tasks := private.Group("/tasks")
		{
			tasks.PATCH("/batch/status", d.TaskHandler.BatchUpdateStatus)
			tasks.PUT("/:taskId", d.TaskHandler.UpdateTask)
			tasks.DELETE("/:taskId", d.TaskHandler.DeleteTask)
		}

		docs := private.Group("/docs")
		{
			docs.GET("/:docId", d.DocHandler.GetDoc)
			docs.PUT("/:docId", d.DocHandler.UpdateDoc)
			docs.DELETE("/:docId", d.DocHandler.DeleteDoc)
		}

		private.POST("/ml/predict-success/:projectId", d.ProjectHandler.PredictSuccess)
	}
	return r
}

type GatewayDeps struct {
	Config  *config.Config
	Log     *zap.Logger
	Handler *handler.GatewayHandler
}

// NewGatewayRouter serves the internal LLM routes behind the shared key.
func NewGatewayRouter(d GatewayDeps) *gin.Engine {
	r := base(d.Config, d.Log)

	ai := r.Group("/ai")
	ai.Use(middleware.InternalKey(d.Config.LLM.InternalKey))
	{
		ai.POST("/idea/generate", d.Handler.GenerateIdea)
		ai.POST("/idea/feasibility", d.Handler.AssessFeasibility)
	}
	return r
}
