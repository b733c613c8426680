package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Renishchandera/gameforge-ai/internal/modules/serializer"
	"github.com/Renishchandera/gameforge-ai/internal/modules/service"
)

type DocHandler struct {
	svc service.DocService
}

func NewDocHandler(s service.DocService) *DocHandler {
	return &DocHandler{svc: s}
}

type CreateDocReq struct {
	Type          string `json:"type" binding:"required,doc_type"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	GeneratedByAI bool   `json:"generatedByAI"`
}

type UpdateDocReq struct {
	Type          *string `json:"type" binding:"omitempty,doc_type"`
	Title         *string `json:"title"`
	Content       *string `json:"content"`
	GeneratedByAI *bool   `json:"generatedByAI"`
}

func (h *DocHandler) CreateDoc(c *gin.Context) {
	ownerID, projectID, ok := projectParam(c)
	if !ok {
		return
	}
	req := CreateDocReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr(service.ErrInvalidDocType.Error(), err))
		return
	}

	doc, err := h.svc.Create(c.Request.Context(), projectID, ownerID, service.CreateDocInput{
		Type:          req.Type,
		Title:         req.Title,
		Content:       req.Content,
		GeneratedByAI: req.GeneratedByAI,
	})
	if err != nil {
		writeServiceErr(c, err, "Failed to create doc")
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Msg: "Doc created", Data: gin.H{"doc": doc}})
}

func (h *DocHandler) ListDocs(c *gin.Context) {
	ownerID, projectID, ok := projectParam(c)
	if !ok {
		return
	}
	docs, err := h.svc.List(c.Request.Context(), projectID, ownerID)
	if err != nil {
		writeServiceErr(c, err, "Failed to fetch docs")
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: gin.H{"docs": docs}})
}

func docParam(c *gin.Context) (ownerID, docID uuid.UUID, ok bool) {
	owner, ok := callerID(c)
	if !ok {
		return owner, docID, false
	}
	id, ok := parseUUIDParam(c.Param("docId"))
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("Invalid doc id", nil))
		return owner, id, false
	}
	return owner, id, true
}

func (h *DocHandler) GetDoc(c *gin.Context) {
	ownerID, docID, ok := docParam(c)
	if !ok {
		return
	}
	doc, err := h.svc.Get(c.Request.Context(), docID, ownerID)
	if err != nil {
		writeServiceErr(c, err, "Failed to fetch doc")
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: gin.H{"doc": doc}})
}

func (h *DocHandler) UpdateDoc(c *gin.Context) {
	ownerID, docID, ok := docParam(c)
	if !ok {
		return
	}
	req := UpdateDocReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr(bindingMsg(err), err))
		return
	}

	doc, err := h.svc.Update(c.Request.Context(), docID, ownerID, service.UpdateDocInput{
		Type:          req.Type,
		Title:         req.Title,
		Content:       req.Content,
		GeneratedByAI: req.GeneratedByAI,
	})
	if err != nil {
		writeServiceErr(c, err, "Failed to update doc")
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "Doc updated", Data: gin.H{"doc": doc}})
}

func (h *DocHandler) DeleteDoc(c *gin.Context) {
	ownerID, docID, ok := docParam(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), docID, ownerID); err != nil {
		writeServiceErr(c, err, "Failed to delete doc")
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "Doc deleted successfully"})
}
