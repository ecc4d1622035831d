package voucher

import (
	"strings"
	"time"

	"voucher-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

type ScanType string

const (
	ScanTypeCustomer ScanType = "customer"
	ScanTypeBusiness ScanType = "business"
)

func ParseScanType(s string) (ScanType, error) {
	switch t := ScanType(strings.ToLower(strings.TrimSpace(s))); t {
	case ScanTypeCustomer, ScanTypeBusiness:
		return t, nil
	default:
		return "", errs.Reason(ErrInvalidScanType, "unknown scan type %q", s)
	}
}

type ScanSource string

const (
	ScanSourceCamera  ScanSource = "camera"
	ScanSourceGallery ScanSource = "gallery"
	ScanSourceLink    ScanSource = "link"
	ScanSourceShare   ScanSource = "share"
)

func ParseScanSource(s string) (ScanSource, error) {
	switch src := ScanSource(strings.ToLower(strings.TrimSpace(s))); src {
	case ScanSourceCamera, ScanSourceGallery, ScanSourceLink, ScanSourceShare:
		return src, nil
	default:
		return "", errs.Reason(ErrInvalidScanSource, "unknown scan source %q", s)
	}
}

// ScanMetadata is optional device and location context sent by clients.
type ScanMetadata struct {
	DeviceID       string   `json:"deviceId,omitempty"`
	Platform       string   `json:"platform,omitempty"`
	AppVersion     string   `json:"appVersion,omitempty"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	RedemptionCode string   `json:"redemptionCode,omitempty"`
	Synthetic      bool     `json:"synthetic,omitempty"`
}

// Scan is an immutable audit event.
type Scan struct {
	ID         int64
	VoucherID  uuid.UUID
	UserID     *uuid.UUID
	BusinessID *uuid.UUID
	Type       ScanType
	Source     ScanSource
	Metadata   ScanMetadata
	ScannedAt  time.Time
}
