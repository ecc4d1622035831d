package shared

import (
	"context"
	"log/slog"

	"voucher-engine/internal/domain/voucher"
	"voucher-engine/internal/domain/voucherbook"
	"voucher-engine/internal/infra"
	"voucher-engine/internal/pkg/errs"
	"voucher-engine/internal/usecase/readmodel"

	"github.com/google/uuid"
)

// LoadVoucher treats a soft-deleted voucher as absent.
func LoadVoucher(ctx context.Context, repo VoucherRepository, id uuid.UUID) (*voucher.Voucher, error) {
	v, err := repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Reason(voucher.ErrVoucherNotFound, "voucher %s not found", id)
		}
		return nil, StoreError(err)
	}
	if v.IsDeleted() {
		return nil, errs.Reason(voucher.ErrVoucherNotFound, "voucher %s not found", id)
	}
	return v, nil
}

func LoadBook(ctx context.Context, repo BookRepository, id uuid.UUID) (*voucherbook.Book, error) {
	return loadBook(ctx, repo.FindByID, id)
}

// LockBook loads the book and keeps it locked for the rest of the
// transaction.
func LockBook(ctx context.Context, repo BookRepository, id uuid.UUID) (*voucherbook.Book, error) {
	return loadBook(ctx, repo.FindByIDForUpdate, id)
}

func loadBook(ctx context.Context, find func(context.Context, uuid.UUID) (*voucherbook.Book, error), id uuid.UUID) (*voucherbook.Book, error) {
	b, err := find(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Reason(voucherbook.ErrBookNotFound, "voucher book %s not found", id)
		}
		return nil, StoreError(err)
	}
	if b.IsDeleted() {
		return nil, errs.Reason(voucherbook.ErrBookNotFound, "voucher book %s not found", id)
	}
	return b, nil
}

// StoreError leaves categorized errors alone and marks everything else as
// an unavailable store.
func StoreError(err error) error {
	if err == nil || errs.Category(err) != nil {
		return err
	}
	return errs.Unavailable(err, "voucher store")
}

// Localize never fails: without a usable translation the source view is
// returned.
func Localize(ctx context.Context, l Localizer, logger *slog.Logger, view readmodel.VoucherRM, lang string) readmodel.VoucherRM {
	if lang == "" || l == nil {
		return view
	}
	localized, err := l.LocalizeVoucher(ctx, view, lang)
	if err != nil {
		logger.WarnContext(ctx, "voucher localization failed",
			"voucher_id", view.ID.String(),
			"lang", lang,
			"error", err.Error())
		return view
	}
	return localized
}
