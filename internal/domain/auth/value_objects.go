package auth

import (
	"strings"

	"voucher-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidRole      = errs.Define(errs.ErrUnauthorized, "invalid role")
	ErrMissingBusiness  = errs.Define(errs.ErrUnauthorized, "business role requires a business id")
	ErrInsufficientRole = errs.Define(errs.ErrUnauthorized, "insufficient permissions")
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleBusiness Role = "business"
	RoleAdmin    Role = "admin"
)

func NewRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleCustomer, RoleBusiness, RoleAdmin:
		return r, nil
	default:
		return "", errs.Reason(ErrInvalidRole, "invalid role %q", s)
	}
}

func (r Role) String() string { return string(r) }

// Principal is the authenticated caller. BusinessID is set for business
// staff and names the business they act for.
type Principal struct {
	UserID     uuid.UUID
	BusinessID *uuid.UUID
	Role       Role
}

func NewPrincipal(userID uuid.UUID, businessID *uuid.UUID, role Role) (Principal, error) {
	if userID == uuid.Nil {
		return Principal{}, errs.Unauthorized("principal requires a user id")
	}
	if role == RoleBusiness && businessID == nil {
		return Principal{}, ErrMissingBusiness
	}
	return Principal{UserID: userID, BusinessID: businessID, Role: role}, nil
}

// Allows reports whether the principal holds one of roles. Admins pass
// every check.
func (p Principal) Allows(roles ...Role) bool {
	if p.Role == RoleAdmin {
		return true
	}
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}
