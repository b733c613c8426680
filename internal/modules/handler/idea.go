package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Renishchandera/gameforge-ai/internal/llm"
	"github.com/Renishchandera/gameforge-ai/internal/middleware"
	"github.com/Renishchandera/gameforge-ai/internal/modules/serializer"
	"github.com/Renishchandera/gameforge-ai/internal/modules/service"
)

// callerID returns the authenticated user's id, writing a 401 when there is none.
func callerID(c *gin.Context) (uuid.UUID, bool) {
	u, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr(service.ErrNoToken.Error()))
		return uuid.Nil, false
	}
	return u.ID, true
}

type IdeaHandler struct {
	svc service.IdeaService
}

func NewIdeaHandler(s service.IdeaService) *IdeaHandler {
	return &IdeaHandler{svc: s}
}

// GenerateIdea godoc
//
//	@Summary	Generate a game idea
//	@Tags		idea
//	@Accept		json
//	@Produce	json
//	@Param		body	body	llm.IdeaAttributes	false	"Optional attributes"
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=llm.GenerateIdeaResponse}
//	@Failure	500	{object}	serializer.Response
//	@Router		/idea/generate [post]
func (h *IdeaHandler) GenerateIdea(c *gin.Context) {
	attrs := llm.IdeaAttributes{}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&attrs); err != nil {
			c.JSON(http.StatusBadRequest, serializer.ParamErr(bindingMsg(err), err))
			return
		}
	}

	text, err := h.svc.Generate(c.Request.Context(), attrs)
	if err != nil {
		writeServiceErr(c, err, "Failed to generate idea")
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: llm.GenerateIdeaResponse{Idea: text}})
}

// AssessFeasibility godoc
//
//	@Summary	Score an idea's feasibility
//	@Tags		idea
//	@Accept		json
//	@Produce	json
//	@Param		body	body	llm.FeasibilityRequest	true	"Idea text"
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=llm.Feasibility}
//	@Failure	400	{object}	serializer.Response
//	@Router		/idea/feasibility [post]
func (h *IdeaHandler) AssessFeasibility(c *gin.Context) {
	req := llm.FeasibilityRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr(service.ErrIdeaContentRequired.Error(), err))
		return
	}

	out, err := h.svc.Feasibility(c.Request.Context(), req.Idea)
	if err != nil {
		writeServiceErr(c, err, "Failed to assess feasibility")
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

type SaveIdeaReq struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	llm.IdeaAttributes
	FeasibilityScore *int     `json:"feasibilityScore"`
	Risks            []string `json:"risks"`
}

// SaveIdea godoc
//
//	@Summary	Save an idea
//	@Tags		idea
//	@Accept		json
//	@Produce	json
//	@Param		body	body	SaveIdeaReq	true	"Idea"
//	@Security	BearerAuth
//	@Success	201	{object}	serializer.Response{data=model.Idea}
//	@Failure	400	{object}	serializer.Response
//	@Router		/idea/save [post]
func (h *IdeaHandler) SaveIdea(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	req := SaveIdeaReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr(bindingMsg(err), err))
		return
	}

	idea, err := h.svc.Create(c.Request.Context(), ownerID, service.CreateIdeaInput{
		Title:            req.Title,
		Content:          req.Content,
		IdeaAttributes:   req.IdeaAttributes,
		FeasibilityScore: req.FeasibilityScore,
		Risks:            req.Risks,
	})
	if err != nil {
		writeServiceErr(c, err, "Failed to save idea")
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Msg: "Idea saved", Data: gin.H{"idea": idea}})
}

func (h *IdeaHandler) ListSaved(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	ideas, err := h.svc.ListSaved(c.Request.Context(), ownerID)
	if err != nil {
		writeServiceErr(c, err, "Failed to fetch ideas")
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: gin.H{"ideas": ideas}})
}
