package voucher

import (
	"strings"
	"time"

	"voucher-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

type CodeType string

const (
	CodeTypeQR     CodeType = "qr"
	CodeTypeShort  CodeType = "short"
	CodeTypeStatic CodeType = "static"
)

func ParseCodeType(s string) (CodeType, error) {
	switch t := CodeType(strings.ToLower(strings.TrimSpace(s))); t {
	case CodeTypeQR, CodeTypeShort, CodeTypeStatic:
		return t, nil
	default:
		return "", errs.Reason(ErrInvalidCodeType, "unknown code type %q", s)
	}
}

type Code struct {
	ID        uuid.UUID
	VoucherID uuid.UUID
	Type      CodeType
	Code      string
	BatchID   *string
	IsActive  bool
	CreatedAt time.Time
}
