//go:build unit || e2e

package builder

import (
	"time"

	"voucher-engine/internal/domain/voucherbook"

	"github.com/google/uuid"
)

type BookBuilder struct {
	ID           uuid.UUID
	Title        string
	Description  string
	Edition      string
	Month        int
	Year         int
	Status       voucherbook.Status
	TotalPages   int
	VoucherCount int
	CreatedAt    time.Time
}

// NewBookBuilder returns a book that is ready for print.
func NewBookBuilder() *BookBuilder {
	return &BookBuilder{
		ID:           uuid.New(),
		Title:        "Spring Savings",
		Description:  "Local deals for the spring season",
		Edition:      "1st",
		Month:        4,
		Year:         2025,
		Status:       voucherbook.StatusDraft,
		TotalPages:   4,
		VoucherCount: 8,
		CreatedAt:    time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (b *BookBuilder) With(mutate func(*BookBuilder)) *BookBuilder {
	mutate(b)
	return b
}

func (b *BookBuilder) Build() *voucherbook.Book {
	return voucherbook.ReconstructBook(voucherbook.Snapshot{
		ID:           b.ID,
		Title:        b.Title,
		Description:  b.Description,
		Edition:      b.Edition,
		Month:        b.Month,
		Year:         b.Year,
		Status:       b.Status,
		TotalPages:   b.TotalPages,
		VoucherCount: b.VoucherCount,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.CreatedAt,
	})
}

func (b *BookBuilder) BuildParams() voucherbook.NewBookParams {
	return voucherbook.NewBookParams{
		Title:       b.Title,
		Description: b.Description,
		Edition:     b.Edition,
		Month:       b.Month,
		Year:        b.Year,
		TotalPages:  b.TotalPages,
	}
}
