//go:build unit || e2e

package builder

import (
	"time"

	"voucher-engine/internal/domain/voucher"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type VoucherBuilder struct {
	ID                    uuid.UUID
	BusinessID            uuid.UUID
	CategoryID            *uuid.UUID
	Title                 string
	Description           string
	State                 voucher.Status
	DiscountKind          voucher.DiscountKind
	DiscountValue         decimal.Decimal
	Currency              string
	ValidFrom             *time.Time
	ValidUntil            *time.Time
	MaxRedemptions        *int
	MaxRedemptionsPerUser int
	RedemptionsCount      int
	ClaimCount            int
	ScanCount             int
	QRCode                string
	CreatedAt             time.Time
	DeletedAt             *time.Time
}

func NewVoucherBuilder() *VoucherBuilder {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	id := uuid.New()
	return &VoucherBuilder{
		ID:                    id,
		BusinessID:            uuid.New(),
		Title:                 "20% off any coffee",
		Description:           "Valid at the counter",
		State:                 voucher.StatusDraft,
		DiscountKind:          voucher.DiscountPercentage,
		DiscountValue:         decimal.NewFromInt(20),
		Currency:              "EUR",
		MaxRedemptionsPerUser: 1,
		QRCode:                "VCH-" + id.String()[:10],
		CreatedAt:             now,
	}
}

func (b *VoucherBuilder) With(mutate func(*VoucherBuilder)) *VoucherBuilder {
	mutate(b)
	return b
}

func (b *VoucherBuilder) WithState(s voucher.Status) *VoucherBuilder {
	b.State = s
	return b
}

func (b *VoucherBuilder) WithMaxRedemptions(n int) *VoucherBuilder {
	b.MaxRedemptions = &n
	return b
}

func (b *VoucherBuilder) WithWindow(from, until *time.Time) *VoucherBuilder {
	b.ValidFrom = from
	b.ValidUntil = until
	return b
}

func (b *VoucherBuilder) discount() voucher.Discount {
	d, err := voucher.NewDiscount(b.DiscountKind, b.DiscountValue)
	if err != nil {
		panic(err)
	}
	return d
}

// BuildNew goes through the constructor, so State and counters are ignored.
func (b *VoucherBuilder) BuildNew() (*voucher.Voucher, error) {
	d, err := voucher.NewDiscount(b.DiscountKind, b.DiscountValue)
	if err != nil {
		return nil, err
	}
	return voucher.NewVoucher(b.ID, voucher.NewVoucherParams{
		BusinessID:            b.BusinessID,
		CategoryID:            b.CategoryID,
		Title:                 b.Title,
		Description:           b.Description,
		Discount:              d,
		Currency:              voucher.Currency(b.Currency),
		ValidFrom:             b.ValidFrom,
		ValidUntil:            b.ValidUntil,
		MaxRedemptions:        b.MaxRedemptions,
		MaxRedemptionsPerUser: b.MaxRedemptionsPerUser,
		QRCode:                b.QRCode,
	}, b.CreatedAt)
}

// Build reconstructs a voucher in any state.
func (b *VoucherBuilder) Build() *voucher.Voucher {
	return voucher.ReconstructVoucher(b.BuildSnapshot())
}

func (b *VoucherBuilder) BuildSnapshot() voucher.Snapshot {
	return voucher.Snapshot{
		ID:                    b.ID,
		BusinessID:            b.BusinessID,
		CategoryID:            b.CategoryID,
		Title:                 b.Title,
		Description:           b.Description,
		State:                 b.State,
		Discount:              b.discount(),
		Currency:              voucher.Currency(b.Currency),
		ValidFrom:             b.ValidFrom,
		ValidUntil:            b.ValidUntil,
		MaxRedemptions:        b.MaxRedemptions,
		MaxRedemptionsPerUser: b.MaxRedemptionsPerUser,
		RedemptionsCount:      b.RedemptionsCount,
		ScanCount:             b.ScanCount,
		ClaimCount:            b.ClaimCount,
		QRCode:                b.QRCode,
		CreatedAt:             b.CreatedAt,
		UpdatedAt:             b.CreatedAt,
		DeletedAt:             b.DeletedAt,
	}
}
