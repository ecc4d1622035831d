package response

import (
	"voucher-engine/internal/domain/voucherbook"
	"voucher-engine/internal/usecase/readmodel"
)

type BookResponse = readmodel.BookRM

type BookEntryResponse struct {
	ID         string `json:"id"`
	BookID     string `json:"book_id"`
	VoucherID  string `json:"voucher_id"`
	PageNumber int    `json:"page_number"`
	Position   int    `json:"position"`
}

func FromBookEntry(e *voucherbook.Entry) *BookEntryResponse {
	return &BookEntryResponse{
		ID:         e.ID.String(),
		BookID:     e.BookID.String(),
		VoucherID:  e.VoucherID.String(),
		PageNumber: e.PageNumber,
		Position:   e.Position,
	}
}

type ReadinessResponse struct {
	Allowed        bool     `json:"allowed"`
	RequiredFields []string `json:"required_fields"`
}

func FromReadiness(r voucherbook.ReadinessCheck) *ReadinessResponse {
	fields := r.RequiredFields
	if fields == nil {
		fields = []string{}
	}
	return &ReadinessResponse{Allowed: r.Allowed, RequiredFields: fields}
}
