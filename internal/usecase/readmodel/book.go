package readmodel

import (
	"time"

	"voucher-engine/internal/domain/voucherbook"

	"github.com/google/uuid"
)

type BookRM struct {
	ID            uuid.UUID     `json:"id"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Edition       string        `json:"edition"`
	Month         int           `json:"month"`
	Year          int           `json:"year"`
	Status        string        `json:"status"`
	TotalPages    int           `json:"total_pages"`
	VoucherCount  int           `json:"voucher_count"`
	CoverImageURL *string       `json:"cover_image_url,omitempty"`
	BackImageURL  *string       `json:"back_image_url,omitempty"`
	PDFURL        *string       `json:"pdf_url,omitempty"`
	Entries       []BookEntryRM `json:"entries"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// BookEntryRM carries the business name for display. An empty name means
// the directory could not resolve it.
type BookEntryRM struct {
	ID           uuid.UUID `json:"id"`
	VoucherID    uuid.UUID `json:"voucher_id"`
	VoucherTitle string    `json:"voucher_title"`
	QRCode       string    `json:"qr_code"`
	BusinessID   uuid.UUID `json:"business_id"`
	BusinessName string    `json:"business_name"`
	PageNumber   int       `json:"page_number"`
	Position     int       `json:"position"`
}

func FromBook(b *voucherbook.Book) BookRM {
	return BookRM{
		ID:            b.ID(),
		Title:         b.Title(),
		Description:   b.Description(),
		Edition:       b.Edition(),
		Month:         b.Month(),
		Year:          b.Year(),
		Status:        b.Status().String(),
		TotalPages:    b.TotalPages(),
		VoucherCount:  b.VoucherCount(),
		CoverImageURL: b.CoverImageURL(),
		BackImageURL:  b.BackImageURL(),
		PDFURL:        b.PDFURL(),
		Entries:       []BookEntryRM{},
		CreatedAt:     b.CreatedAt(),
		UpdatedAt:     b.UpdatedAt(),
	}
}
