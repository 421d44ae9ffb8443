package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/parseldesk/backoffice/internal/domain/models"
	"github.com/parseldesk/backoffice/internal/service/auth"
)

// UserIDKey is the gin context key carrying the authenticated user id.
const UserIDKey = "userID"

// AuthHandler serves login, registration and profile routes.
type AuthHandler struct {
	svc    *auth.Service
	logger *zap.Logger
}

// NewAuthHandler constructs the HTTP handler adapter.
func NewAuthHandler(svc *auth.Service, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{svc: svc, logger: logger}
}

// Register serves POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var input models.RegisterRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	result, err := h.svc.Register(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondCreated(c, result, "Registration successful")
}

// Login serves POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var creds models.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	result, err := h.svc.Login(c.Request.Context(), creds)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondOK(c, result)
}

// Me serves GET /api/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.svc.CurrentUser(c.Request.Context(), c.GetString(UserIDKey))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondOK(c, user)
}

// UpdateProfile serves PUT /api/auth/profile.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var input models.ProfileUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	user, err := h.svc.UpdateProfile(c.Request.Context(), c.GetString(UserIDKey), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondOK(c, user)
}
