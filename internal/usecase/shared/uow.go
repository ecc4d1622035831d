package shared

import (
	"context"
	"time"

	"voucher-engine/internal/domain/voucher"
	"voucher-engine/internal/domain/voucherbook"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// Repos: Single statements outside a transaction. Never call it from
	// inside Within.
	Repos() Tx
}

type Tx interface {
	Vouchers() VoucherRepository
	Claims() ClaimRepository
	Scans() ScanRepository
	Codes() CodeRepository
	Books() BookRepository
	Translations() TranslationRepository
}

// Conditional methods return false when their guard did not match; that is
// an expected outcome and not an error.
type VoucherRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*voucher.Voucher, error)
	Create(ctx context.Context, v *voucher.Voucher) error
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to voucher.Status, at time.Time) (bool, error)
	// IncrementRedemptionsIfBelowLimit is the compare-and-increment guard on
	// maxRedemptions.
	IncrementRedemptionsIfBelowLimit(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
	IncrementClaimCount(ctx context.Context, id uuid.UUID, at time.Time) error
	IncrementScanCount(ctx context.Context, id uuid.UUID) error
	// FindExpirable lists live vouchers whose validUntil has passed.
	FindExpirable(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error)
}

type ClaimRepository interface {
	// InsertIfAbsent relies on the (customer, voucher) uniqueness constraint.
	InsertIfAbsent(ctx context.Context, c voucher.Claim) (bool, error)
	FindByCustomerAndVoucher(ctx context.Context, customerID, voucherID uuid.UUID) (*voucher.Claim, error)
	MarkRedeemed(ctx context.Context, claimID uuid.UUID, redemptionCode *string, at time.Time) (bool, error)
}

type ScanRepository interface {
	Create(ctx context.Context, s voucher.Scan) error
}

type CodeRepository interface {
	Create(ctx context.Context, c voucher.Code) error
	FindByCode(ctx context.Context, code string) (*voucher.Code, error)
}

type BookRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*voucherbook.Book, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*voucherbook.Book, error)
	Create(ctx context.Context, b *voucherbook.Book) error
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to voucherbook.Status, at time.Time) (bool, error)
	AddEntry(ctx context.Context, e voucherbook.Entry) (bool, error)
	IncrementVoucherCount(ctx context.Context, id uuid.UUID, at time.Time) error
	ListEntries(ctx context.Context, bookID uuid.UUID) ([]voucherbook.Entry, error)
}

type TranslationRepository interface {
	Find(ctx context.Context, voucherID uuid.UUID, lang string) (*voucher.Translation, error)
	Upsert(ctx context.Context, t voucher.Translation) error
}
