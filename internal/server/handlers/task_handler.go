package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/parseldesk/backoffice/internal/domain/models"
	"github.com/parseldesk/backoffice/internal/service/tasks"
)

// TaskHandler serves the to-do task routes.
type TaskHandler struct {
	svc    *tasks.Service
	logger *zap.Logger
}

// NewTaskHandler constructs the HTTP handler adapter.
func NewTaskHandler(svc *tasks.Service, logger *zap.Logger) *TaskHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskHandler{svc: svc, logger: logger}
}

// List serves GET /api/tasks.
func (h *TaskHandler) List(c *gin.Context) {
	filter := models.TaskFilter{
		Search: c.Query("search"),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", models.DefaultLimit),
	}

	list, pagination, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondList(c, list, pagination)
}

// Get serves GET /api/tasks/:id.
func (h *TaskHandler) Get(c *gin.Context) {
	task, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, task)
}

// Create serves POST /api/tasks.
func (h *TaskHandler) Create(c *gin.Context) {
	var input models.TaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid task payload", zap.Error(err))
		respondBadRequest(c, "Invalid request body")
		return
	}

	task, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondCreated(c, task, "Task created successfully")
}

// Update serves PUT /api/tasks/:id.
func (h *TaskHandler) Update(c *gin.Context) {
	var input models.TaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid task payload", zap.Error(err))
		respondBadRequest(c, "Invalid request body")
		return
	}

	task, err := h.svc.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondOK(c, task)
}

// UpdateStatus serves PATCH /api/tasks/:id/status.
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	task, err := h.svc.SetStatus(c.Request.Context(), c.Param("id"), body.Status)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondOK(c, task)
}

// Delete serves DELETE /api/tasks/:id.
func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondMessage(c, "Task deleted successfully")
}
