package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Renishchandera/gameforge-ai/internal/modules/serializer"
	"github.com/Renishchandera/gameforge-ai/internal/modules/service"
)

type TaskHandler struct {
	svc service.TaskService
}

func NewTaskHandler(s service.TaskService) *TaskHandler {
	return &TaskHandler{svc: s}
}

type CreateTaskReq struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status" binding:"omitempty,task_status"`
	Priority    string     `json:"priority" binding:"omitempty,task_priority"`
	DueDate     *dateInput `json:"dueDate"`
}

// CreateTask godoc
//
//	@Summary	Add a task to a project
//	@Tags		task
//	@Accept		json
//	@Produce	json
//	@Param		id		path	string			true	"Project ID"	format(uuid)
//	@Param		body	body	CreateTaskReq	true	"Task"
//	@Security	BearerAuth
//	@Success	201	{object}	serializer.Response{data=model.Task}
//	@Failure	400	{object}	serializer.Response
//	@Failure	404	{object}	serializer.Response
//	@Router		/projects/{id}/tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	ownerID, projectID, ok := projectParam(c)
	if !ok {
		return
	}
	req := CreateTaskReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr(bindingMsg(err), err))
		return
	}

	task, err := h.svc.Create(c.Request.Context(), projectID, ownerID, service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate.ptr(),
	})
	if err != nil {
		writeServiceErr(c, err, "Failed to create task")
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Msg: "Task created", Data: gin.H{"task": task}})
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	ownerID, projectID, ok := projectParam(c)
	if !ok {
		return
	}
	tasks, err := h.svc.List(c.Request.Context(), projectID, ownerID)
	if err != nil {
		writeServiceErr(c, err, "Failed to fetch tasks")
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: gin.H{"tasks": tasks}})
}

// GroupedTasks godoc
//
//	@Summary		Tasks bucketed by status
//	@Description	Buckets are todo, in-progress and done. Each bucket is sorted by priority (high first), then newest first.
//	@Tags			task
//	@Produce		json
//	@Param			id	path	string	true	"Project ID"	format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.GroupedTasks}
//	@Router			/projects/{id}/tasks/grouped [get]
func (h *TaskHandler) GroupedTasks(c *gin.Context) {
	ownerID, projectID, ok := projectParam(c)
	if !ok {
		return
	}
	out, err := h.svc.Grouped(c.Request.Context(), projectID, ownerID)
	if err != nil {
		writeServiceErr(c, err, "Failed to fetch tasks")
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

type UpdateTaskReq struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status" binding:"omitempty,task_status"`
	Priority    *string    `json:"priority" binding:"omitempty,task_priority"`
	DueDate     *dateInput `json:"dueDate"`
}

func taskParam(c *gin.Context) (ownerID, taskID uuid.UUID, ok bool) {
	owner, ok := callerID(c)
	if !ok {
		return owner, taskID, false
	}
	id, ok := parseUUIDParam(c.Param("taskId"))
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("Invalid task id", nil))
		return owner, id, false
	}
	return owner, id, true
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	ownerID, taskID, ok := taskParam(c)
	if !ok {
		return
	}
	req := UpdateTaskReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr(bindingMsg(err), err))
		return
	}

	task, err := h.svc.Update(c.Request.Context(), taskID, ownerID, service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate.ptr(),
	})
	if err != nil {
		writeServiceErr(c, err, "Failed to update task")
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "Task updated", Data: gin.H{"task": task}})
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	ownerID, taskID, ok := taskParam(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), taskID, ownerID); err != nil {
		writeServiceErr(c, err, "Failed to delete task")
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "Task deleted successfully"})
}

type BatchStatusReq struct {
	TaskIDs []string `json:"taskIds"`
	Status  string   `json:"status" binding:"omitempty,task_status"`
}

// BatchUpdateStatus godoc
//
//	@Summary		Set the status of several tasks
//	@Description	All-or-nothing: if any listed task belongs to another user's project, nothing is written.
//	@Tags			task
//	@Accept			json
//	@Produce		json
//	@Param			body	body	BatchStatusReq	true	"Task ids and the new status"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Task}
//	@Failure		403	{object}	serializer.Response
//	@Failure		404	{object}	serializer.Response
//	@Router			/tasks/batch/status [patch]
func (h *TaskHandler) BatchUpdateStatus(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	req := BatchStatusReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr(bindingMsg(err), err))
		return
	}

	ids := make([]uuid.UUID, 0, len(req.TaskIDs))
	for _, raw := range req.TaskIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("Invalid task id", err))
			return
		}
		ids = append(ids, id)
	}

	tasks, err := h.svc.BatchUpdateStatus(c.Request.Context(), ids, req.Status, ownerID)
	if err != nil {
		writeServiceErr(c, err, "Failed to update tasks")
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "Tasks updated", Data: gin.H{"tasks": tasks}})
}
