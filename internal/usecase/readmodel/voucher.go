package readmodel

import (
	"time"

	"voucher-engine/internal/domain/voucher"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VoucherRM is the cached, response-shaped view of a voucher.
type VoucherRM struct {
	ID                    uuid.UUID       `json:"id"`
	BusinessID            uuid.UUID       `json:"business_id"`
	CategoryID            *uuid.UUID      `json:"category_id,omitempty"`
	Title                 string          `json:"title"`
	Description           string          `json:"description"`
	Lang                  string          `json:"lang,omitempty"`
	State                 string          `json:"state"`
	DiscountKind          string          `json:"discount_kind"`
	DiscountValue         decimal.Decimal `json:"discount_value"`
	Currency              string          `json:"currency"`
	ValidFrom             *time.Time      `json:"valid_from,omitempty"`
	ValidUntil            *time.Time      `json:"valid_until,omitempty"`
	MaxRedemptions        *int            `json:"max_redemptions,omitempty"`
	MaxRedemptionsPerUser int             `json:"max_redemptions_per_user"`
	RedemptionsCount      int             `json:"redemptions_count"`
	ScanCount             int             `json:"scan_count"`
	ClaimCount            int             `json:"claim_count"`
	QRCode                string          `json:"qr_code"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

func FromVoucher(v *voucher.Voucher) VoucherRM {
	return VoucherRM{
		ID:                    v.ID(),
		BusinessID:            v.BusinessID(),
		CategoryID:            v.CategoryID(),
		Title:                 v.Title(),
		Description:           v.Description(),
		State:                 v.State().String(),
		DiscountKind:          string(v.Discount().Kind()),
		DiscountValue:         v.Discount().Value(),
		Currency:              v.Currency().String(),
		ValidFrom:             v.ValidFrom(),
		ValidUntil:            v.ValidUntil(),
		MaxRedemptions:        v.MaxRedemptions(),
		MaxRedemptionsPerUser: v.MaxRedemptionsPerUser(),
		RedemptionsCount:      v.RedemptionsCount(),
		ScanCount:             v.ScanCount(),
		ClaimCount:            v.ClaimCount(),
		QRCode:                v.QRCode(),
		CreatedAt:             v.CreatedAt(),
		UpdatedAt:             v.UpdatedAt(),
	}
}
