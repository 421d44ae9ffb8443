package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/parseldesk/backoffice/internal/domain/models"
)

// envelope is the uniform response body: {success, data, pagination?, message?}.
type envelope struct {
	Success    bool               `json:"success"`
	Data       interface{}        `json:"data,omitempty"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
	Message    string             `json:"message,omitempty"`
	Errors     map[string]string  `json:"errors,omitempty"`
}

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, envelope{Success: true, Data: data})
}

func respondCreated(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, envelope{Success: true, Data: data, Message: message})
}

func respondList(c *gin.Context, data interface{}, pagination models.Pagination) {
	c.JSON(http.StatusOK, envelope{Success: true, Data: data, Pagination: &pagination})
}

func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, envelope{Success: true, Message: message})
}

// respondError maps service errors onto the envelope. Validation failures
// carry the field map; everything unexpected collapses to a generic 500 so
// internals never leak.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, envelope{
			Success: false,
			Message: verr.Error(),
			Errors:  verr.Fields,
		})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, envelope{Success: false, Message: "Resource not found"})
	case errors.Is(err, models.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, envelope{Success: false, Message: "Invalid credentials"})
	case errors.Is(err, models.ErrConflict):
		c.JSON(http.StatusConflict, envelope{Success: false, Message: "Resource already exists"})
	default:
		if logger != nil {
			logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		}
		c.JSON(http.StatusInternalServerError, envelope{Success: false, Message: "Internal server error"})
	}
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, envelope{Success: false, Message: message})
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
