package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Renishchandera/gameforge-ai/internal/modules/model"
	"github.com/Renishchandera/gameforge-ai/internal/modules/serializer"
	"github.com/Renishchandera/gameforge-ai/internal/modules/service"
)

type ProjectHandler struct {
	svc service.ProjectService
}

func NewProjectHandler(s service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: s}
}

type CreateProjectReq struct {
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	Genre          model.StringList `json:"genre"`
	Genres         model.StringList `json:"genres"`
	Platform       model.StringList `json:"platform"`
	Platforms      model.StringList `json:"platforms"`
	TargetAudience string           `json:"targetAudience"`
	CoreMechanic   string           `json:"coreMechanic"`
	ArtStyle       string           `json:"artStyle"`
	Monetization   string           `json:"monetization"`
	Status         string           `json:"status" binding:"omitempty,project_status"`
}

// CreateProject godoc
//
//	@Summary	Create a project manually
//	@Tags		project
//	@Accept		json
//	@Produce	json
//	@Param		body	body	CreateProjectReq	true	"Project"
//	@Security	BearerAuth
//	@Success	201	{object}	serializer.Response{data=model.Project}
//	@Failure	400	{object}	serializer.Response
//	@Router		/projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	req := CreateProjectReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr(bindingMsg(err), err))
		return
	}

	p, err := h.svc.CreateManual(c.Request.Context(), ownerID, service.CreateProjectInput{
		Name:           req.Name,
		Description:    req.Description,
		Genres:         model.FirstNonEmpty(req.Genres, req.Genre),
		Platforms:      model.FirstNonEmpty(req.Platforms, req.Platform),
		TargetAudience: req.TargetAudience,
		CoreMechanic:   req.CoreMechanic,
		ArtStyle:       req.ArtStyle,
		Monetization:   req.Monetization,
		Status:         req.Status,
	})
	if err != nil {
		writeServiceErr(c, err, "Failed to create project")
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Msg: "Project created", Data: gin.H{"project": p}})
}

// PromoteIdea godoc
//
//	@Summary	Turn a saved idea into a project
//	@Tags		project
//	@Produce	json
//	@Param		ideaId	path	string	true	"Idea ID"	format(uuid)
//	@Security	BearerAuth
//	@Success	201	{object}	serializer.Response{data=model.Project}
//	@Failure	400	{object}	serializer.Response
//	@Failure	404	{object}	serializer.Response
//	@Router		/projects/from-idea/{ideaId} [post]
func (h *ProjectHandler) PromoteIdea(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	ideaID, ok := parseUUIDParam(c.Param("ideaId"))
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("Invalid idea id", nil))
		return
	}

	p, err := h.svc.PromoteIdea(c.Request.Context(), ideaID, ownerID)
	if err != nil {
		writeServiceErr(c, err, "Failed to create project from idea")
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Msg: "Project created from idea", Data: gin.H{"project": p}})
}

func (h *ProjectHandler) ListProjects(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	projects, err := h.svc.List(c.Request.Context(), ownerID)
	if err != nil {
		writeServiceErr(c, err, "Failed to fetch projects")
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: gin.H{"projects": projects}})
}

// projectParam reads the caller and the :id path segment.
func projectParam(c *gin.Context) (ownerID, projectID uuid.UUID, ok bool) {
	owner, ok := callerID(c)
	if !ok {
		return owner, projectID, false
	}
	id, ok := parseUUIDParam(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("Invalid project id", nil))
		return owner, id, false
	}
	return owner, id, true
}

func (h *ProjectHandler) GetProject(c *gin.Context) {
	ownerID, id, ok := projectParam(c)
	if !ok {
		return
	}
	p, err := h.svc.Get(c.Request.Context(), id, ownerID)
	if err != nil {
		writeServiceErr(c, err, "Failed to fetch project")
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: gin.H{"project": p}})
}

type UpdateProjectReq struct {
	Name           *string          `json:"name"`
	Description    *string          `json:"description"`
	Genre          model.StringList `json:"genre"`
	Genres         model.StringList `json:"genres"`
	Platform       model.StringList `json:"platform"`
	Platforms      model.StringList `json:"platforms"`
	TargetAudience *string          `json:"targetAudience"`
	CoreMechanic   *string          `json:"coreMechanic"`
	ArtStyle       *string          `json:"artStyle"`
	Monetization   *string          `json:"monetization"`
	Status         *string          `json:"status" binding:"omitempty,project_status"`
}

// patchList returns nil when neither key was sent, so the list stays unchanged.
func patchList(plural, singular model.StringList) []string {
	if plural == nil && singular == nil {
		return nil
	}
	return model.FirstNonEmpty(plural, singular)
}

// UpdateProject godoc
//
//	@Summary		Patch a project
//	@Description	Only name, description, genres, platforms, targetAudience, coreMechanic, artStyle, monetization and status are writable.
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string				true	"Project ID"	format(uuid)
//	@Param			body	body	UpdateProjectReq	true	"Fields to change"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Project}
//	@Failure		404	{object}	serializer.Response
//	@Router			/projects/{id} [put]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	ownerID, id, ok := projectParam(c)
	if !ok {
		return
	}
	req := UpdateProjectReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr(bindingMsg(err), err))
		return
	}

	p, err := h.svc.Update(c.Request.Context(), id, ownerID, service.UpdateProjectInput{
		Name:           req.Name,
		Description:    req.Description,
		Genres:         patchList(req.Genres, req.Genre),
		Platforms:      patchList(req.Platforms, req.Platform),
		TargetAudience: req.TargetAudience,
		CoreMechanic:   req.CoreMechanic,
		ArtStyle:       req.ArtStyle,
		Monetization:   req.Monetization,
		Status:         req.Status,
	})
	if err != nil {
		writeServiceErr(c, err, "Failed to update project")
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "Project updated", Data: gin.H{"project": p}})
}

type UpdateStatusReq struct {
	Status string `json:"status" binding:"required,project_status"`
}

func (h *ProjectHandler) UpdateStatus(c *gin.Context) {
	ownerID, id, ok := projectParam(c)
	if !ok {
		return
	}
	req := UpdateStatusReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr(service.ErrInvalidStatus.Error(), err))
		return
	}

	p, err := h.svc.UpdateStatus(c.Request.Context(), id, ownerID, req.Status)
	if err != nil {
		writeServiceErr(c, err, "Failed to update project status")
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "Project status updated", Data: gin.H{"project": p}})
}

func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	ownerID, id, ok := projectParam(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id, ownerID); err != nil {
		writeServiceErr(c, err, "Failed to delete project")
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "Project deleted successfully"})
}

type ProjectSummary struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Status string    `json:"status"`
}

// GetStats godoc
//
//	@Summary	Task statistics for a project
//	@Tags		project
//	@Produce	json
//	@Param		id	path	string	true	"Project ID"	format(uuid)
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=service.ProjectStats}
//	@Failure	404	{object}	serializer.Response
//	@Router		/projects/{id}/stats [get]
func (h *ProjectHandler) GetStats(c *gin.Context) {
	ownerID, id, ok := projectParam(c)
	if !ok {
		return
	}
	stats, p, err := h.svc.Stats(c.Request.Context(), id, ownerID)
	if err != nil {
		writeServiceErr(c, err, "Failed to compute project stats")
		return
	}
	summary := ProjectSummary{ID: p.ID, Name: p.Name, Status: p.Status}
	c.JSON(http.StatusOK, serializer.Response{Data: gin.H{"stats": stats, "project": summary}})
}

// PredictSuccess godoc
//
//	@Summary	Ask the ML service for a success prediction
//	@Tags		ml
//	@Produce	json
//	@Param		projectId	path	string	true	"Project ID"	format(uuid)
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=model.SuccessPrediction}
//	@Failure	404	{object}	serializer.Response
//	@Failure	500	{object}	serializer.Response
//	@Router		/ml/predict-success/{projectId} [post]
func (h *ProjectHandler) PredictSuccess(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c.Param("projectId"))
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("Invalid project id", nil))
		return
	}

	pred, err := h.svc.PredictSuccess(c.Request.Context(), id, ownerID)
	if err != nil {
		writeServiceErr(c, err, service.ErrPredictionFailed.Error())
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: gin.H{"prediction": pred}})
}
