package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/parseldesk/backoffice/internal/domain/models"
	"github.com/parseldesk/backoffice/internal/service/expenses"
)

// ExpenseHandler serves the expense routes.
type ExpenseHandler struct {
	svc    *expenses.Service
	logger *zap.Logger
}

// NewExpenseHandler constructs the HTTP handler adapter.
func NewExpenseHandler(svc *expenses.Service, logger *zap.Logger) *ExpenseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExpenseHandler{svc: svc, logger: logger}
}

// List serves GET /api/expenses.
func (h *ExpenseHandler) List(c *gin.Context) {
	filter := models.ExpenseFilter{
		Search:    c.Query("search"),
		Category:  c.DefaultQuery("category", "all"),
		Status:    c.DefaultQuery("status", "all"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		MinAmount: c.Query("minAmount"),
		MaxAmount: c.Query("maxAmount"),
		SortBy:    c.DefaultQuery("sortBy", "expenseDate"),
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

// Get serves GET /api/expenses/:id.
func (h *ExpenseHandler) Get(c *gin.Context) {
	exp, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, exp)
}

// Create serves POST /api/expenses.
func (h *ExpenseHandler) Create(c *gin.Context) {
	var input models.ExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid expense payload", zap.Error(err))
		respondBadRequest(c, "Invalid request body")
		return
	}

	exp, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondCreated(c, exp, "Expense created successfully")
}

// Update serves PUT /api/expenses/:id.
func (h *ExpenseHandler) Update(c *gin.Context) {
	var input models.ExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid expense payload", zap.Error(err))
		respondBadRequest(c, "Invalid request body")
		return
	}

	exp, err := h.svc.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondOK(c, exp)
}

// Delete serves DELETE /api/expenses/:id.
func (h *ExpenseHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondMessage(c, "Expense deleted successfully")
}

// Stats serves GET /api/expenses/stats/overview.
func (h *ExpenseHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context(), c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, stats)
}

// MonthlyReport serves GET /api/expenses/reports/monthly.
func (h *ExpenseHandler) MonthlyReport(c *gin.Context) {
	year := queryInt(c, "year", 0)
	month := queryInt(c, "month", 0)

	report, err := h.svc.MonthlyReport(c.Request.Context(), year, month)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, report)
}
