package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Renishchandera/gameforge-ai/internal/llm"
	"github.com/Renishchandera/gameforge-ai/internal/modules/service"
)

// GatewayHandler serves the internal /ai routes. Bodies are plain JSON, not the API envelope.
type GatewayHandler struct {
	ai service.IdeaAI
}

func NewGatewayHandler(ai service.IdeaAI) *GatewayHandler {
	return &GatewayHandler{ai: ai}
}

func (h *GatewayHandler) GenerateIdea(c *gin.Context) {
	attrs := llm.IdeaAttributes{}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&attrs); err != nil {
			c.JSON(http.StatusBadRequest, llm.ErrorResponse{Message: "Invalid request body", Error: err.Error()})
			return
		}
	}

	text, err := h.ai.GenerateIdea(c.Request.Context(), attrs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, llm.ErrorResponse{Message: service.ErrUpstream.Error(), Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, llm.GenerateIdeaResponse{Idea: text})
}

func (h *GatewayHandler) AssessFeasibility(c *gin.Context) {
	req := llm.FeasibilityRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, llm.ErrorResponse{Message: "Invalid request body", Error: err.Error()})
		return
	}

	out, err := h.ai.AssessFeasibility(c.Request.Context(), req.Idea)
	if err != nil {
		c.JSON(http.StatusInternalServerError, llm.ErrorResponse{Message: service.ErrUpstream.Error(), Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}
