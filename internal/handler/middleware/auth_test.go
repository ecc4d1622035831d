//go:build unit

package middleware_test

import (
	"net/http"
	"testing"
	"time"

	"voucher-engine/internal/domain/auth"
	"voucher-engine/internal/handler/middleware"
	"voucher-engine/internal/pkg/config"
	"voucher-engine/internal/pkg/jwt"
	"voucher-engine/internal/testutil/authtest"
	"voucher-engine/internal/testutil/httptest"
	"voucher-engine/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthRouter(t *testing.T) (*gin.Engine, *authtest.JWTHelper) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.NewTestConfig()
	mw := middleware.NewAuthMiddleware(usecase.NewTokenValidator(jwt.NewService(cfg.JWT.Secret, time.Hour)))

	whoami := func(c *gin.Context) {
		p, ok := middleware.GetPrincipal(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"anonymous": true})
			return
		}
		body := gin.H{"user_id": p.UserID.String(), "role": p.Role.String()}
		if p.BusinessID != nil {
			body["business_id"] = p.BusinessID.String()
		}
		c.JSON(http.StatusOK, body)
	}

	r := gin.New()
	r.GET("/required", mw.RequireAuth(), whoami)
	r.GET("/staff", mw.RequireAuth(), mw.RequireRole(auth.RoleBusiness), whoami)
	r.GET("/optional", mw.OptionalAuth(), whoami)
	return r, authtest.NewJWTHelper(cfg.JWT)
}

func TestRequireAuth(t *testing.T) {
	r, tokens := setupAuthRouter(t)

	t.Run("valid token sets the principal", func(t *testing.T) {
		businessID := uuid.New()
		tok, userID := tokens.Business(t, businessID)

		w := httptest.PerformRequest(t, r, http.MethodGet, "/required", nil, tok)
		var body map[string]string
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &body)
		assert.Equal(t, userID.String(), body["user_id"])
		assert.Equal(t, "business", body["role"])
		assert.Equal(t, businessID.String(), body["business_id"])
	})

	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{"missing token", func(*testing.T) string { return "" }},
		{"garbage token", func(*testing.T) string { return "not.a.jwt" }},
		{"expired token", func(t *testing.T) string {
			return tokens.CreateExpiredToken(t, auth.Principal{UserID: uuid.New(), Role: auth.RoleCustomer})
		}},
		{"signed with another secret", func(t *testing.T) string {
			other := authtest.NewJWTHelper(config.JWTConfig{Secret: "someone-else", Duration: "1h"})
			tok, _ := other.Customer(t)
			return tok
		}},
		{"business role without business", func(t *testing.T) string {
			return tokens.GenerateToken(t, auth.Principal{UserID: uuid.New(), Role: auth.RoleBusiness})
		}},
		{"unknown role", func(t *testing.T) string {
			return tokens.GenerateToken(t, auth.Principal{UserID: uuid.New(), Role: auth.Role("superuser")})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.PerformRequest(t, r, http.MethodGet, "/required", nil, tt.token(t))
			httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "unauthenticated")
		})
	}
}

func TestRequireRole(t *testing.T) {
	r, tokens := setupAuthRouter(t)

	customer, _ := tokens.Customer(t)
	w := httptest.PerformRequest(t, r, http.MethodGet, "/staff", nil, customer)
	httptest.AssertErrorResponse(t, w, http.StatusForbidden, "forbidden")

	staff, _ := tokens.Business(t, uuid.New())
	w = httptest.PerformRequest(t, r, http.MethodGet, "/staff", nil, staff)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.PerformRequest(t, r, http.MethodGet, "/staff", nil, tokens.Admin(t))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalAuth(t *testing.T) {
	r, tokens := setupAuthRouter(t)

	for _, tok := range []string{"", "not.a.jwt"} {
		w := httptest.PerformRequest(t, r, http.MethodGet, "/optional", nil, tok)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"anonymous":true}`, w.Body.String())
	}

	tok, userID := tokens.Customer(t)
	w := httptest.PerformRequest(t, r, http.MethodGet, "/optional", nil, tok)
	var body map[string]string
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &body)
	assert.Equal(t, userID.String(), body["user_id"])
}
