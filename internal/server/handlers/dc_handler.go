package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/parseldesk/backoffice/internal/domain/models"
	"github.com/parseldesk/backoffice/internal/service/dcs"
)

// DCHandler serves the distribution center routes.
type DCHandler struct {
	svc    *dcs.Service
	logger *zap.Logger
}

// NewDCHandler constructs the HTTP handler adapter.
func NewDCHandler(svc *dcs.Service, logger *zap.Logger) *DCHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DCHandler{svc: svc, logger: logger}
}

// List serves GET /api/dcs.
func (h *DCHandler) List(c *gin.Context) {
	filter := models.DCFilter{
		Search:    c.Query("search"),
		Status:    c.DefaultQuery("status", "all"),
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

// Get serves GET /api/dcs/:id.
func (h *DCHandler) Get(c *gin.Context) {
	dc, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, dc)
}

// Create serves POST /api/dcs.
func (h *DCHandler) Create(c *gin.Context) {
	var input models.DCInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid dc payload", zap.Error(err))
		respondBadRequest(c, "Invalid request body")
		return
	}

	dc, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondCreated(c, dc, "DC created successfully")
}

// Update serves PUT /api/dcs/:id.
func (h *DCHandler) Update(c *gin.Context) {
	var input models.DCInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid dc payload", zap.Error(err))
		respondBadRequest(c, "Invalid request body")
		return
	}

	dc, err := h.svc.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondOK(c, dc)
}

// Delete serves DELETE /api/dcs/:id.
func (h *DCHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondMessage(c, "DC deleted successfully")
}
