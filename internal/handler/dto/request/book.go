package request

import (
	"voucher-engine/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookRequest struct {
	Title         string  `json:"title" binding:"max=200"`
	Description   string  `json:"description" binding:"max=2000"`
	Edition       string  `json:"edition" binding:"max=50"`
	Month         int     `json:"month" binding:"omitempty,min=1,max=12"`
	Year          int     `json:"year" binding:"omitempty,min=2000,max=2100"`
	TotalPages    int     `json:"total_pages" binding:"omitempty,min=1,max=500"`
	CoverImageURL *string `json:"cover_image_url" binding:"omitempty,url"`
	BackImageURL  *string `json:"back_image_url" binding:"omitempty,url"`
}

func (r *CreateBookRequest) ToInput() commands.CreateBookInput {
	return commands.CreateBookInput{
		Title:         r.Title,
		Description:   r.Description,
		Edition:       r.Edition,
		Month:         r.Month,
		Year:          r.Year,
		TotalPages:    r.TotalPages,
		CoverImageURL: r.CoverImageURL,
		BackImageURL:  r.BackImageURL,
	}
}

type AddBookEntryRequest struct {
	VoucherID  uuid.UUID `json:"voucher_id" binding:"required"`
	PageNumber int       `json:"page_number" binding:"required,min=1"`
	Position   int       `json:"position" binding:"min=0"`
}

func (r *AddBookEntryRequest) ToInput(bookID uuid.UUID) commands.AddBookEntryInput {
	return commands.AddBookEntryInput{
		BookID:     bookID,
		VoucherID:  r.VoucherID,
		PageNumber: r.PageNumber,
		Position:   r.Position,
	}
}
