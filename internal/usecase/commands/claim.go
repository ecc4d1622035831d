package commands

import (
	"context"
	"strings"
	"time"

	"voucher-engine/internal/domain/voucher"
	"voucher-engine/internal/infra"
	"voucher-engine/internal/observability/tracing"
	"voucher-engine/internal/pkg/errs"
	"voucher-engine/internal/usecase/effects"
	"voucher-engine/internal/usecase/readmodel"
	"voucher-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// Claim adds the voucher to the user's wallet. The (user, voucher)
// uniqueness constraint decides concurrent duplicates; the loser is told the
// voucher is already claimed.
func (u *voucherUseCaseImpl) Claim(ctx context.Context, voucherID, userID uuid.UUID, lang string) (res *ClaimResult, err error) {
	ctx, span := tracing.Start(ctx, "voucher.Claim",
		attribute.String("voucher.id", voucherID.String()),
		attribute.String("user.id", userID.String()))
	defer func() {
		u.metrics.ObserveClaim(outcome(err))
		tracing.End(span, err)
	}()

	now := u.clock.Now()
	claim := voucher.NewClaim(uuid.New(), userID, voucherID, now)

	var view readmodel.VoucherRM
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := shared.LoadVoucher(ctx, tx.Vouchers(), voucherID); err != nil {
			return err
		}
		inserted, err := tx.Claims().InsertIfAbsent(ctx, claim)
		if err != nil {
			return shared.StoreError(err)
		}
		if !inserted {
			return errs.Reason(voucher.ErrAlreadyClaimed, "voucher %s is already claimed by this user", voucherID)
		}
		if err := tx.Vouchers().IncrementClaimCount(ctx, voucherID, now); err != nil {
			return shared.StoreError(err)
		}
		v, err := shared.LoadVoucher(ctx, tx.Vouchers(), voucherID)
		if err != nil {
			return err
		}
		view = readmodel.FromVoucher(v)
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.logger.InfoContext(ctx, "voucher claimed",
		"voucher_id", voucherID.String(),
		"user_id", userID.String(),
		"claim_id", claim.ID.String())
	u.invalidate(ctx, voucherID)

	return &ClaimResult{
		ClaimID:   claim.ID,
		ClaimedAt: claim.ClaimedAt,
		Voucher:   shared.Localize(ctx, u.localizer, u.logger, view, lang),
	}, nil
}

// RedeemInput names the customer whose claim is consumed. BusinessID is set
// when business staff redeem at their counter and must own the voucher.
type RedeemInput struct {
	VoucherID      uuid.UUID
	UserID         uuid.UUID
	BusinessID     *uuid.UUID
	RedemptionCode string
}

// Redeem consumes the user's claim. The global limit guard and the claim
// status change commit together or not at all.
func (u *voucherUseCaseImpl) Redeem(ctx context.Context, in RedeemInput) (res *RedeemResult, err error) {
	voucherID, userID := in.VoucherID, in.UserID
	ctx, span := tracing.Start(ctx, "voucher.Redeem",
		attribute.String("voucher.id", voucherID.String()),
		attribute.String("user.id", userID.String()))
	defer func() {
		u.metrics.ObserveRedemption(outcome(err))
		tracing.End(span, err)
	}()

	now := u.clock.Now()
	var code *string
	if c := strings.TrimSpace(in.RedemptionCode); c != "" {
		code = &c
	}

	var (
		claimID uuid.UUID
		view    readmodel.VoucherRM
	)
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		v, err := shared.LoadVoucher(ctx, tx.Vouchers(), voucherID)
		if err != nil {
			return err
		}
		if in.BusinessID != nil && *in.BusinessID != v.BusinessID() {
			return errs.Reason(voucher.ErrBusinessMismatch,
				"business %s does not own voucher %s", *in.BusinessID, voucherID)
		}
		if err := redeemable(v, now); err != nil {
			return err
		}

		c, err := tx.Claims().FindByCustomerAndVoucher(ctx, userID, voucherID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Reason(voucher.ErrNotClaimed, "voucher %s has not been claimed by this user", voucherID)
			}
			return shared.StoreError(err)
		}
		if c.IsRedeemed() {
			return errs.Reason(voucher.ErrAlreadyRedeemed, "voucher %s was already redeemed by this user", voucherID)
		}

		ok, err := tx.Vouchers().IncrementRedemptionsIfBelowLimit(ctx, voucherID, now)
		if err != nil {
			return shared.StoreError(err)
		}
		if !ok {
			return errs.Reason(voucher.ErrRedemptionLimitReached, "voucher %s has reached its maximum redemptions", voucherID)
		}

		ok, err = tx.Claims().MarkRedeemed(ctx, c.ID, code, now)
		if err != nil {
			return shared.StoreError(err)
		}
		if !ok {
			return errs.Reason(voucher.ErrAlreadyRedeemed, "voucher %s was already redeemed by this user", voucherID)
		}

		v, err = shared.LoadVoucher(ctx, tx.Vouchers(), voucherID)
		if err != nil {
			return err
		}
		claimID = c.ID
		view = readmodel.FromVoucher(v)
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.logger.InfoContext(ctx, "voucher redeemed",
		"voucher_id", voucherID.String(),
		"user_id", userID.String(),
		"redemptions", view.RedemptionsCount)

	scan := voucher.Scan{
		ID:        u.codes.ScanID(),
		VoucherID: voucherID,
		UserID:    &userID,
		Type:      voucher.ScanTypeCustomer,
		Source:    voucher.ScanSourceLink,
		Metadata:  voucher.ScanMetadata{Synthetic: true},
		ScannedAt: now,
	}
	if code != nil {
		scan.Metadata.RedemptionCode = *code
	}
	u.effects.Run(ctx, effects.ScanRecord, func(ctx context.Context) error {
		return u.uow.Repos().Scans().Create(ctx, scan)
	})
	u.invalidate(ctx, voucherID)

	return &RedeemResult{
		ClaimID:    claimID,
		RedeemedAt: now,
		Voucher:    view,
	}, nil
}

// redeemable rejects vouchers that can no longer be used at the counter.
func redeemable(v *voucher.Voucher, now time.Time) error {
	switch {
	case v.State() == voucher.StatusExpired || v.IsExpiredAt(now):
		return errs.Reason(voucher.ErrExpired, "voucher %s has expired", v.ID())
	case !v.State().IsLive():
		return errs.Reason(voucher.ErrNotPublished, "voucher %s is %s and cannot be redeemed", v.ID(), v.State())
	}
	return nil
}
