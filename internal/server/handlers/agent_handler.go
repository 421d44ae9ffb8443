package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/parseldesk/backoffice/internal/domain/models"
	"github.com/parseldesk/backoffice/internal/service/agents"
)

// AgentHandler serves the delivery agent routes.
type AgentHandler struct {
	svc    *agents.Service
	logger *zap.Logger
}

// NewAgentHandler constructs the HTTP handler adapter.
func NewAgentHandler(svc *agents.Service, logger *zap.Logger) *AgentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AgentHandler{svc: svc, logger: logger}
}

// List serves GET /api/delivery-agents.
func (h *AgentHandler) List(c *gin.Context) {
	filter := models.AgentFilter{
		Search:    c.Query("search"),
		IsActive:  c.DefaultQuery("isActive", "all"),
		SortBy:    c.DefaultQuery("sortBy", "createdAt"),
		SortOrder: c.DefaultQuery("sortOrder", "desc"),
		Page:      queryInt(c, "page", 1),
		Limit:     queryInt(c, "limit", models.DefaultLimit),
	}

	list, pagination, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondList(c, list, pagination)
}

// Get serves GET /api/delivery-agents/:id.
func (h *AgentHandler) Get(c *gin.Context) {
	agent, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, agent)
}

// Create serves POST /api/delivery-agents.
func (h *AgentHandler) Create(c *gin.Context) {
	var input models.AgentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid agent payload", zap.Error(err))
		respondBadRequest(c, "Invalid request body")
		return
	}

	agent, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondCreated(c, agent, "Agent created successfully")
}

// Update serves PUT /api/delivery-agents/:id.
func (h *AgentHandler) Update(c *gin.Context) {
	var input models.AgentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid agent payload", zap.Error(err))
		respondBadRequest(c, "Invalid request body")
		return
	}

	agent, err := h.svc.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondOK(c, agent)
}

// UpdateStatus serves PATCH /api/delivery-agents/:id/status. Only the
// active flag changes.
func (h *AgentHandler) UpdateStatus(c *gin.Context) {
	var body struct {
		IsActive *bool `json:"isActive"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.IsActive == nil {
		respondBadRequest(c, "isActive is required")
		return
	}

	agent, err := h.svc.SetStatus(c.Request.Context(), c.Param("id"), *body.IsActive)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondOK(c, agent)
}

// Delete serves DELETE /api/delivery-agents/:id.
func (h *AgentHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondMessage(c, "Agent deleted successfully")
}

// Stats serves GET /api/delivery-agents/stats/overview.
func (h *AgentHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context(), c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, stats)
}

// Performance serves GET /api/delivery-agents/:id/performance.
func (h *AgentHandler) Performance(c *gin.Context) {
	perf, err := h.svc.Performance(c.Request.Context(), c.Param("id"), c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, perf)
}
