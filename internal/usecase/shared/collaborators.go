package shared

import (
	"context"
	"time"

	"voucher-engine/internal/usecase/readmodel"

	"github.com/google/uuid"
)

//go:generate mockgen -source=collaborators.go -destination=mock/mock_collaborators.go -package=sharedmock

// Cache is a disposable secondary index. Callers treat every failure as a
// miss.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePattern(ctx context.Context, pattern string) error
}

// Localizer shapes responses only; it is never consulted for business rules.
type Localizer interface {
	LocalizeVoucher(ctx context.Context, v readmodel.VoucherRM, lang string) (readmodel.VoucherRM, error)
}

type Business struct {
	ID   uuid.UUID
	Name string
}

// BusinessDirectory is a read-only view of the business registry.
type BusinessDirectory interface {
	FindBusiness(ctx context.Context, id uuid.UUID) (*Business, error)
}

// BookRenderer produces the printable artifact of a book.
type BookRenderer interface {
	RenderBook(ctx context.Context, book readmodel.BookRM) ([]byte, error)
}

// VoucherCacheKey is the read-through key for one language rendition of a
// voucher. An empty lang is the untranslated record.
func VoucherCacheKey(id uuid.UUID, lang string) string {
	if lang == "" {
		return "voucher:" + id.String()
	}
	return "voucher:" + id.String() + ":" + lang
}

// VoucherCachePattern matches every language rendition of a voucher.
func VoucherCachePattern(id uuid.UUID) string {
	return "voucher:" + id.String() + ":*"
}
