package commands

import (
	"context"

	"voucher-engine/internal/domain/voucher"
	"voucher-engine/internal/infra"
	"voucher-engine/internal/observability/tracing"
	"voucher-engine/internal/pkg/errs"
	"voucher-engine/internal/usecase/effects"
	"voucher-engine/internal/usecase/readmodel"
	"voucher-engine/internal/usecase/shared"

	"go.opentelemetry.io/otel/attribute"
)

// Scan records that a voucher was looked at and tells the scanner whether it
// can be claimed. It never creates or changes a claim. The scan record and
// the scan counter are best-effort.
func (u *voucherUseCaseImpl) Scan(ctx context.Context, in ScanInput) (res *ScanResult, err error) {
	ctx, span := tracing.Start(ctx, "voucher.Scan",
		attribute.String("voucher.id", in.VoucherID.String()),
		attribute.String("scan.source", in.Source))
	defer func() { tracing.End(span, err) }()

	source, err := voucher.ParseScanSource(in.Source)
	if err != nil {
		return nil, err
	}
	scanType, err := voucher.ParseScanType(in.Type)
	if err != nil {
		return nil, err
	}

	v, err := shared.LoadVoucher(ctx, u.uow.Repos().Vouchers(), in.VoucherID)
	if err != nil {
		return nil, err
	}
	if in.BusinessID != nil && *in.BusinessID != v.BusinessID() {
		return nil, errs.Reason(voucher.ErrBusinessMismatch,
			"business %s does not own voucher %s", *in.BusinessID, in.VoucherID)
	}

	alreadyClaimed := false
	if in.UserID != nil {
		_, err := u.uow.Repos().Claims().FindByCustomerAndVoucher(ctx, *in.UserID, in.VoucherID)
		switch {
		case err == nil:
			alreadyClaimed = true
		case !infra.IsKind(err, infra.KindNotFound):
			return nil, shared.StoreError(err)
		}
	}

	now := u.clock.Now()
	canClaim := in.UserID != nil &&
		v.State() == voucher.StatusPublished &&
		!v.IsNotYetValidAt(now) &&
		!v.IsExpiredAt(now) &&
		v.HasRedemptionCapacity() &&
		!alreadyClaimed

	scan := voucher.Scan{
		ID:         u.codes.ScanID(),
		VoucherID:  in.VoucherID,
		UserID:     in.UserID,
		BusinessID: in.BusinessID,
		Type:       scanType,
		Source:     source,
		Metadata:   in.Metadata,
		ScannedAt:  now,
	}
	u.effects.Run(ctx, effects.ScanRecord, func(ctx context.Context) error {
		return u.uow.Repos().Scans().Create(ctx, scan)
	})

	view := readmodel.FromVoucher(v)
	u.effects.Run(ctx, effects.ScanCount, func(ctx context.Context) error {
		if err := u.uow.Repos().Vouchers().IncrementScanCount(ctx, in.VoucherID); err != nil {
			return err
		}
		view.ScanCount++
		return nil
	})
	u.metrics.ObserveScan(string(source), string(scanType))
	u.invalidate(ctx, in.VoucherID)

	return &ScanResult{
		ScanID:         scan.ID,
		Voucher:        shared.Localize(ctx, u.localizer, u.logger, view, in.Lang),
		AlreadyClaimed: alreadyClaimed,
		CanClaim:       canClaim,
	}, nil
}

// ScanCode resolves a presented QR payload, short code or static code and
// scans the voucher it points at.
func (u *voucherUseCaseImpl) ScanCode(ctx context.Context, code string, in ScanInput) (*ScanResult, error) {
	resolved, err := u.resolver.ResolveCode(ctx, code)
	if err != nil {
		return nil, err
	}

	in.VoucherID = resolved.VoucherID
	res, err := u.Scan(ctx, in)
	if err != nil {
		return nil, err
	}
	res.Code = resolved
	return res, nil
}
