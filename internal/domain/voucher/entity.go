package voucher

import (
	"strings"
	"time"

	"voucher-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

const DefaultMaxRedemptionsPerUser = 1

type Voucher struct {
	id                    uuid.UUID
	businessID            uuid.UUID
	categoryID            *uuid.UUID
	title                 string
	description           string
	state                 Status
	discount              Discount
	currency              Currency
	validFrom             *time.Time
	validUntil            *time.Time
	maxRedemptions        *int
	maxRedemptionsPerUser int
	redemptionsCount      int
	scanCount             int
	claimCount            int
	qrCode                string
	createdAt             time.Time
	updatedAt             time.Time
	deletedAt             *time.Time
}

type NewVoucherParams struct {
	BusinessID            uuid.UUID
	CategoryID            *uuid.UUID
	Title                 string
	Description           string
	Discount              Discount
	Currency              Currency
	ValidFrom             *time.Time
	ValidUntil            *time.Time
	MaxRedemptions        *int
	MaxRedemptionsPerUser int
	QRCode                string
}

// NewVoucher always starts in draft.
func NewVoucher(id uuid.UUID, p NewVoucherParams, now time.Time) (*Voucher, error) {
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return nil, ErrInvalidTitle
	}
	if p.ValidFrom != nil && p.ValidUntil != nil && p.ValidFrom.After(*p.ValidUntil) {
		return nil, ErrInvalidValidityWindow
	}
	if p.MaxRedemptions != nil && *p.MaxRedemptions < 1 {
		return nil, errs.Reason(ErrInvalidRedemptionLimit, "maxRedemptions must be at least 1, got %d", *p.MaxRedemptions)
	}
	perUser := p.MaxRedemptionsPerUser
	if perUser == 0 {
		perUser = DefaultMaxRedemptionsPerUser
	}
	if perUser < 1 {
		return nil, errs.Reason(ErrInvalidRedemptionLimit, "maxRedemptionsPerUser must be at least 1, got %d", perUser)
	}

	return &Voucher{
		id:                    id,
		businessID:            p.BusinessID,
		categoryID:            p.CategoryID,
		title:                 title,
		description:           strings.TrimSpace(p.Description),
		state:                 StatusDraft,
		discount:              p.Discount,
		currency:              p.Currency,
		validFrom:             p.ValidFrom,
		validUntil:            p.ValidUntil,
		maxRedemptions:        p.MaxRedemptions,
		maxRedemptionsPerUser: perUser,
		qrCode:                p.QRCode,
		createdAt:             now,
		updatedAt:             now,
	}, nil
}

// Snapshot carries persisted state back into the domain.
type Snapshot struct {
	ID                    uuid.UUID
	BusinessID            uuid.UUID
	CategoryID            *uuid.UUID
	Title                 string
	Description           string
	State                 Status
	Discount              Discount
	Currency              Currency
	ValidFrom             *time.Time
	ValidUntil            *time.Time
	MaxRedemptions        *int
	MaxRedemptionsPerUser int
	RedemptionsCount      int
	ScanCount             int
	ClaimCount            int
	QRCode                string
	CreatedAt             time.Time
	UpdatedAt             time.Time
	DeletedAt             *time.Time
}

func ReconstructVoucher(s Snapshot) *Voucher {
	return &Voucher{
		id:                    s.ID,
		businessID:            s.BusinessID,
		categoryID:            s.CategoryID,
		title:                 s.Title,
		description:           s.Description,
		state:                 s.State,
		discount:              s.Discount,
		currency:              s.Currency,
		validFrom:             s.ValidFrom,
		validUntil:            s.ValidUntil,
		maxRedemptions:        s.MaxRedemptions,
		maxRedemptionsPerUser: s.MaxRedemptionsPerUser,
		redemptionsCount:      s.RedemptionsCount,
		scanCount:             s.ScanCount,
		claimCount:            s.ClaimCount,
		qrCode:                s.QRCode,
		createdAt:             s.CreatedAt,
		updatedAt:             s.UpdatedAt,
		deletedAt:             s.DeletedAt,
	}
}

func (v *Voucher) Snapshot() Snapshot {
	return Snapshot{
		ID:                    v.id,
		BusinessID:            v.businessID,
		CategoryID:            v.categoryID,
		Title:                 v.title,
		Description:           v.description,
		State:                 v.state,
		Discount:              v.discount,
		Currency:              v.currency,
		ValidFrom:             v.validFrom,
		ValidUntil:            v.validUntil,
		MaxRedemptions:        v.maxRedemptions,
		MaxRedemptionsPerUser: v.maxRedemptionsPerUser,
		RedemptionsCount:      v.redemptionsCount,
		ScanCount:             v.scanCount,
		ClaimCount:            v.claimCount,
		QRCode:                v.qrCode,
		CreatedAt:             v.createdAt,
		UpdatedAt:             v.updatedAt,
		DeletedAt:             v.deletedAt,
	}
}

func (v *Voucher) IsDeleted() bool {
	return v.deletedAt != nil
}

func (v *Voucher) IsNotYetValidAt(t time.Time) bool {
	return v.validFrom != nil && t.Before(*v.validFrom)
}

func (v *Voucher) IsExpiredAt(t time.Time) bool {
	return v.validUntil != nil && t.After(*v.validUntil)
}

// HasRedemptionCapacity reports whether the global limit leaves room.
func (v *Voucher) HasRedemptionCapacity() bool {
	return v.maxRedemptions == nil || v.redemptionsCount < *v.maxRedemptions
}

// ValidatePublishWindow names the violated bound.
func (v *Voucher) ValidatePublishWindow(now time.Time) error {
	if v.IsNotYetValidAt(now) {
		return errs.Reason(ErrPublishWindow,
			"cannot publish: validFrom %s is after now", v.validFrom.UTC().Format(time.RFC3339))
	}
	if v.IsExpiredAt(now) {
		return errs.Reason(ErrPublishWindow,
			"cannot publish: validUntil %s is before now", v.validUntil.UTC().Format(time.RFC3339))
	}
	return nil
}

// ValidateTransition checks the table and, when publishing, the window.
func (v *Voucher) ValidateTransition(target Status, now time.Time) error {
	if err := ValidateTransition(v.state, target); err != nil {
		return err
	}
	if target == StatusPublished {
		return v.ValidatePublishWindow(now)
	}
	return nil
}

func (v *Voucher) TransitionTo(target Status, now time.Time) error {
	if err := v.ValidateTransition(target, now); err != nil {
		return err
	}
	v.state = target
	v.updatedAt = now
	return nil
}

func (v *Voucher) Suspend(now time.Time) error {
	if !v.state.CanSuspend() {
		return errs.Reason(ErrAlreadySuspended, "cannot suspend voucher in state %s", v.state)
	}
	v.state = StatusSuspended
	v.updatedAt = now
	return nil
}

func (v *Voucher) ID() uuid.UUID               { return v.id }
func (v *Voucher) BusinessID() uuid.UUID       { return v.businessID }
func (v *Voucher) CategoryID() *uuid.UUID      { return v.categoryID }
func (v *Voucher) Title() string               { return v.title }
func (v *Voucher) Description() string         { return v.description }
func (v *Voucher) State() Status               { return v.state }
func (v *Voucher) Discount() Discount          { return v.discount }
func (v *Voucher) Currency() Currency          { return v.currency }
func (v *Voucher) ValidFrom() *time.Time       { return v.validFrom }
func (v *Voucher) ValidUntil() *time.Time      { return v.validUntil }
func (v *Voucher) MaxRedemptions() *int        { return v.maxRedemptions }
func (v *Voucher) MaxRedemptionsPerUser() int  { return v.maxRedemptionsPerUser }
func (v *Voucher) RedemptionsCount() int       { return v.redemptionsCount }
func (v *Voucher) ScanCount() int              { return v.scanCount }
func (v *Voucher) ClaimCount() int             { return v.claimCount }
func (v *Voucher) QRCode() string              { return v.qrCode }
func (v *Voucher) CreatedAt() time.Time        { return v.createdAt }
func (v *Voucher) UpdatedAt() time.Time        { return v.updatedAt }
func (v *Voucher) DeletedAt() *time.Time       { return v.deletedAt }
