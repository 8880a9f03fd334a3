//go:build unit

package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"stayhub/internal/handler/middleware"
	"stayhub/internal/pkg/errs"
	"stayhub/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTokenValidator struct {
	userID string
	role   string
	err    error
}

func (s stubTokenValidator) ValidateToken(context.Context, string) (string, string, error) {
	return s.userID, s.role, s.err
}

func newAuthRouter(validator stubTokenValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(middleware.ErrorHandler())

	auth := middleware.NewAuthMiddleware(validator)
	engine.GET("/me", auth.RequireAuth(), func(c *gin.Context) {
		id, _ := middleware.GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"id": id})
	})
	engine.GET("/owner", auth.RequireAuth(), auth.RequireHotelOwner(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return engine
}

// decodePublicError reads the {"error":{"message":...}} envelope the error
// middleware renders for public errors.
func decodePublicError(t *testing.T, body []byte) string {
	t.Helper()
	var resp struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp.Error.Message
}

func TestRequireAuth(t *testing.T) {
	t.Run("valid token passes user id through the context", func(t *testing.T) {
		router := newAuthRouter(stubTokenValidator{userID: "user_2abc", role: "guest"})

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/me", nil, "token")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"id":"user_2abc"}`, rec.Body.String())
	})

	t.Run("missing bearer token aborts with the public error envelope", func(t *testing.T) {
		router := newAuthRouter(stubTokenValidator{})

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/me", nil, "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Access token required", decodePublicError(t, rec.Body.Bytes()))
	})

	t.Run("rejected token aborts with 401", func(t *testing.T) {
		router := newAuthRouter(stubTokenValidator{err: errs.ErrUserNotFound})

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/me", nil, "token")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid or expired token", decodePublicError(t, rec.Body.Bytes()))
	})
}

func TestRequireHotelOwner(t *testing.T) {
	t.Run("hotel owner passes", func(t *testing.T) {
		router := newAuthRouter(stubTokenValidator{userID: "user_owner", role: "hotelOwner"})

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/owner", nil, "token")

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("guest role aborts with 403", func(t *testing.T) {
		router := newAuthRouter(stubTokenValidator{userID: "user_2abc", role: "guest"})

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/owner", nil, "token")

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "Insufficient permissions", decodePublicError(t, rec.Body.Bytes()))
	})
}
