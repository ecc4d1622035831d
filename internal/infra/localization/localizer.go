package localization

import (
	"context"

	"voucher-engine/internal/domain/voucher"
	"voucher-engine/internal/infra"
	"voucher-engine/internal/usecase/readmodel"
	"voucher-engine/internal/usecase/shared"

	"github.com/jinzhu/copier"
)

// StoreLocalizer overlays stored translations on a voucher view. A missing
// translation leaves the source text in place.
type StoreLocalizer struct {
	uow shared.UnitOfWork
}

var _ shared.Localizer = (*StoreLocalizer)(nil)

func NewStoreLocalizer(uow shared.UnitOfWork) *StoreLocalizer {
	return &StoreLocalizer{uow: uow}
}

func (l *StoreLocalizer) LocalizeVoucher(ctx context.Context, v readmodel.VoucherRM, lang string) (readmodel.VoucherRM, error) {
	lang = voucher.NormalizeLang(lang)
	if lang == "" {
		return v, nil
	}

	tr, err := l.uow.Repos().Translations().Find(ctx, v.ID, lang)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return v, nil
		}
		return v, err
	}

	var out readmodel.VoucherRM
	if err := copier.CopyWithOption(&out, &v, copier.Option{DeepCopy: true}); err != nil {
		return v, err
	}
	out.Title = tr.Title
	if tr.Description != "" {
		out.Description = tr.Description
	}
	out.Lang = lang
	return out, nil
}
