//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"voucher-engine/internal/domain/auth"
	"voucher-engine/internal/pkg/config"
	"voucher-engine/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) service(t *testing.T, d time.Duration) *jwt.Service {
	t.Helper()
	if d == 0 {
		var err error
		d, err = time.ParseDuration(h.cfg.Duration)
		require.NoError(t, err)
	}
	return jwt.NewService(h.cfg.Secret, d)
}

func (h *JWTHelper) GenerateToken(t *testing.T, p auth.Principal) string {
	t.Helper()
	token, err := h.service(t, 0).GenerateToken(p)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) Customer(t *testing.T) (string, uuid.UUID) {
	t.Helper()
	id := uuid.New()
	return h.GenerateToken(t, auth.Principal{UserID: id, Role: auth.RoleCustomer}), id
}

func (h *JWTHelper) Business(t *testing.T, businessID uuid.UUID) (string, uuid.UUID) {
	t.Helper()
	id := uuid.New()
	return h.GenerateToken(t, auth.Principal{UserID: id, BusinessID: &businessID, Role: auth.RoleBusiness}), id
}

func (h *JWTHelper) Admin(t *testing.T) string {
	t.Helper()
	return h.GenerateToken(t, auth.Principal{UserID: uuid.New(), Role: auth.RoleAdmin})
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, p auth.Principal) string {
	t.Helper()
	token, err := h.service(t, time.Millisecond).GenerateToken(p)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	return token
}
