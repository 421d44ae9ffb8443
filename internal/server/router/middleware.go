package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/parseldesk/backoffice/internal/server/handlers"
	"github.com/parseldesk/backoffice/internal/service/auth"
)

// TokenVerifier validates bearer tokens.
type TokenVerifier interface {
	VerifyToken(token string) (*auth.Claims, error)
}

// RoleKey is the gin context key carrying the authenticated user role.
const RoleKey = "role"

// requireAuth rejects requests without a valid bearer token. A 401 here is
// the global logout signal for clients.
func requireAuth(verifier TokenVerifier, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authorization token required",
			})
			return
		}

		claims, err := verifier.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			logger.Debug("token rejected", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid or expired token",
			})
			return
		}

		c.Set(handlers.UserIDKey, claims.Subject)
		c.Set(RoleKey, claims.Role)
		c.Next()
	}
}
