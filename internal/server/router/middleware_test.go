package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parseldesk/backoffice/internal/domain/models"
	"github.com/parseldesk/backoffice/internal/server/handlers"
	"github.com/parseldesk/backoffice/internal/service/auth"
)

type fakeVerifier struct {
	claims *auth.Claims
}

func (v *fakeVerifier) VerifyToken(token string) (*auth.Claims, error) {
	if token == "good-token" {
		return v.claims, nil
	}
	return nil, models.ErrUnauthorized
}

func newProtectedRouter(verifier TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", requireAuth(verifier, nil), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userID": c.GetString(handlers.UserIDKey),
			"role":   c.GetString(RoleKey),
		})
	})
	return r
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	r := newProtectedRouter(&fakeVerifier{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Authorization token required", body["message"])
}

func TestRequireAuth_WrongScheme(t *testing.T) {
	r := newProtectedRouter(&fakeVerifier{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic Zm9vOmJhcg==")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	r := newProtectedRouter(&fakeVerifier{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer expired-or-garbage")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Invalid or expired token", body["message"])
}

func TestRequireAuth_ValidTokenSetsIdentity(t *testing.T) {
	verifier := &fakeVerifier{claims: &auth.Claims{Role: "admin"}}
	verifier.claims.Subject = "665f1e9c2ab79c0012345678"
	r := newProtectedRouter(verifier)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "665f1e9c2ab79c0012345678", body["userID"])
	assert.Equal(t, "admin", body["role"])
}
