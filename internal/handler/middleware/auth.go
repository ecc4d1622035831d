package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"voucher-engine/internal/domain/auth"
	"voucher-engine/internal/handler/httperr"
	"voucher-engine/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const ctxPrincipalKey = "principal"

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			abortUnauthenticated(c, "Access token required")
			return
		}

		p, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			abortUnauthenticated(c, "Invalid or expired token")
			return
		}

		setPrincipal(c, p)
		c.Next()
	}
}

// RequireRole must run after RequireAuth. Admins always pass.
func (m *AuthMiddleware) RequireRole(roles ...auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		if !ok {
			abortUnauthenticated(c, "Access token required")
			return
		}
		if !p.Allows(roles...) {
			httperr.AbortWithError(c, http.StatusForbidden, auth.ErrInsufficientRole, "Insufficient permissions", nil)
			return
		}
		c.Next()
	}
}

// OptionalAuth authenticates the request if a token is present, but does not abort on failure.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		p, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			c.Next()
			return
		}

		setPrincipal(c, p)
		c.Next()
	}
}

func setPrincipal(c *gin.Context, p auth.Principal) {
	c.Set(ctxPrincipalKey, p)
	// downstream spans carry the caller too
	span := trace.SpanFromContext(c.Request.Context())
	span.SetAttributes(attribute.String("enduser.id", p.UserID.String()), attribute.String("enduser.role", p.Role.String()))
}

func abortUnauthenticated(c *gin.Context, msg string) {
	resp := httperr.Response{Status: http.StatusUnauthorized}
	resp.Error.Message = msg
	resp.Error.Code = "unauthenticated"
	c.AbortWithStatusJSON(http.StatusUnauthorized, resp)
}

func GetPrincipal(c *gin.Context) (auth.Principal, bool) {
	v, exists := c.Get(ctxPrincipalKey)
	if !exists {
		return auth.Principal{}, false
	}
	p, ok := v.(auth.Principal)
	return p, ok
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	p, ok := GetPrincipal(c)
	if !ok {
		return uuid.Nil, false
	}
	return p.UserID, true
}

// SetPrincipal is for handler tests that bypass token validation.
func SetPrincipal(c *gin.Context, p auth.Principal) {
	setPrincipal(c, p)
}
