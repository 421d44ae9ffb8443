package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/parseldesk/backoffice/internal/domain/models"
	"github.com/parseldesk/backoffice/internal/service/collections"
)

// CollectionHandler serves the cash collection routes.
type CollectionHandler struct {
	svc    *collections.Service
	logger *zap.Logger
}

// NewCollectionHandler constructs the HTTP handler adapter.
func NewCollectionHandler(svc *collections.Service, logger *zap.Logger) *CollectionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CollectionHandler{svc: svc, logger: logger}
}

// List serves GET /api/cash-collections.
func (h *CollectionHandler) List(c *gin.Context) {
	filter := models.CollectionFilter{
		DC:        c.Query("dc"),
		Agent:     c.DefaultQuery("agent", "all"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		SortBy:    c.DefaultQuery("sortBy", "collectionDate"),
		SortOrder: c.DefaultQuery("sortOrder", "desc"),
		Page:      queryInt(c, "page", 1),
		Limit:     queryInt(c, "limit", models.DefaultLimit),
	}

	recs, pagination, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondList(c, recs, pagination)
}

// Create serves POST /api/cash-collections.
func (h *CollectionHandler) Create(c *gin.Context) {
	var input models.CollectionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid collection payload", zap.Error(err))
		respondBadRequest(c, "Invalid request body")
		return
	}

	rec, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondCreated(c, rec, "Cash collection recorded successfully")
}

// DailyReport serves GET /api/cash-collections/reports/daily.
func (h *CollectionHandler) DailyReport(c *gin.Context) {
	report, err := h.svc.DailyReport(c.Request.Context(), c.Query("date"), c.Query("dc"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondOK(c, report)
}

// Stats serves GET /api/cash-collections/stats/overview.
func (h *CollectionHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context(), c.Query("dc"), c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondOK(c, stats)
}
