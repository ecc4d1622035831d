package queries

import (
	"context"
	"log/slog"

	"voucher-engine/internal/domain/voucherbook"
	"voucher-engine/internal/usecase/readmodel"
	"voucher-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookQueries interface {
	GetBook(ctx context.Context, id uuid.UUID) (*readmodel.BookRM, error)
	Readiness(ctx context.Context, id uuid.UUID) (voucherbook.ReadinessCheck, error)
	RenderPDF(ctx context.Context, id uuid.UUID) ([]byte, error)
}

type bookQueriesImpl struct {
	uow        shared.UnitOfWork
	businesses shared.BusinessDirectory
	renderer   shared.BookRenderer
	logger     *slog.Logger
}

func NewBookQueries(
	uow shared.UnitOfWork,
	businesses shared.BusinessDirectory,
	renderer shared.BookRenderer,
	logger *slog.Logger,
) BookQueries {
	return &bookQueriesImpl{
		uow:        uow,
		businesses: businesses,
		renderer:   renderer,
		logger:     logger,
	}
}

// GetBook returns the book with its entries in page order. Entries whose
// voucher has since been removed are skipped; a business the directory
// cannot resolve leaves the name empty.
func (q *bookQueriesImpl) GetBook(ctx context.Context, id uuid.UUID) (*readmodel.BookRM, error) {
	repos := q.uow.Repos()
	b, err := shared.LoadBook(ctx, repos.Books(), id)
	if err != nil {
		return nil, err
	}
	entries, err := repos.Books().ListEntries(ctx, id)
	if err != nil {
		return nil, shared.StoreError(err)
	}

	view := readmodel.FromBook(b)
	names := make(map[uuid.UUID]string)
	for _, e := range entries {
		v, err := shared.LoadVoucher(ctx, repos.Vouchers(), e.VoucherID)
		if err != nil {
			q.logger.WarnContext(ctx, "skipping book entry without voucher",
				"book_id", id.String(),
				"voucher_id", e.VoucherID.String(),
				"error", err.Error())
			continue
		}

		name, ok := names[v.BusinessID()]
		if !ok {
			name = q.businessName(ctx, v.BusinessID())
			names[v.BusinessID()] = name
		}

		view.Entries = append(view.Entries, readmodel.BookEntryRM{
			ID:           e.ID,
			VoucherID:    e.VoucherID,
			VoucherTitle: v.Title(),
			QRCode:       v.QRCode(),
			BusinessID:   v.BusinessID(),
			BusinessName: name,
			PageNumber:   e.PageNumber,
			Position:     e.Position,
		})
	}
	return &view, nil
}

func (q *bookQueriesImpl) businessName(ctx context.Context, id uuid.UUID) string {
	biz, err := q.businesses.FindBusiness(ctx, id)
	if err != nil {
		q.logger.WarnContext(ctx, "business lookup failed", "business_id", id.String(), "error", err.Error())
		return ""
	}
	return biz.Name
}

func (q *bookQueriesImpl) Readiness(ctx context.Context, id uuid.UUID) (voucherbook.ReadinessCheck, error) {
	b, err := shared.LoadBook(ctx, q.uow.Repos().Books(), id)
	if err != nil {
		return voucherbook.ReadinessCheck{}, err
	}
	return voucherbook.ValidateReadyForPublication(b), nil
}

func (q *bookQueriesImpl) RenderPDF(ctx context.Context, id uuid.UUID) ([]byte, error) {
	view, err := q.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}
	return q.renderer.RenderBook(ctx, *view)
}
