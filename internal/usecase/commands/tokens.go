package commands

import (
	"context"
	"time"

	"voucher-engine/internal/domain/voucher"
	"voucher-engine/internal/infra"
	"voucher-engine/internal/observability/tracing"
	"voucher-engine/internal/pkg/errs"
	"voucher-engine/internal/pkg/token"
	"voucher-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// IssueTokens signs a QR payload for an existing voucher and stores the
// payload and its short code so both can be resolved later.
func (u *voucherUseCaseImpl) IssueTokens(ctx context.Context, voucherID uuid.UUID, batchID string, ttl time.Duration) (res *token.Result, err error) {
	ctx, span := tracing.Start(ctx, "voucher.IssueTokens", attribute.String("voucher.id", voucherID.String()))
	defer func() { tracing.End(span, err) }()

	if _, err := shared.LoadVoucher(ctx, u.uow.Repos().Vouchers(), voucherID); err != nil {
		return nil, err
	}

	res, err = u.tokens.Generate(ctx, voucherID, batchID, ttl)
	if err != nil {
		return nil, err
	}
	if err := u.persistTokens(ctx, *res); err != nil {
		return nil, err
	}

	u.metrics.AddTokensIssued(1)
	u.invalidate(ctx, voucherID)
	return res, nil
}

// IssueBatchTokens issues tokens for many vouchers under one batch id.
// Unknown vouchers and entries that fail to generate or persist are left out
// of the result; they never fail the batch.
func (u *voucherUseCaseImpl) IssueBatchTokens(ctx context.Context, voucherIDs []uuid.UUID, batchID string) (out map[uuid.UUID]token.Result, id string, err error) {
	ctx, span := tracing.Start(ctx, "voucher.IssueBatchTokens", attribute.Int("batch.size", len(voucherIDs)))
	defer func() { tracing.End(span, err) }()

	reqs := make([]token.Request, 0, len(voucherIDs))
	seen := make(map[uuid.UUID]struct{}, len(voucherIDs))
	for _, vid := range voucherIDs {
		if _, dup := seen[vid]; dup {
			continue
		}
		seen[vid] = struct{}{}

		if _, err := shared.LoadVoucher(ctx, u.uow.Repos().Vouchers(), vid); err != nil {
			if errs.Is(err, voucher.ErrVoucherNotFound) {
				u.logger.WarnContext(ctx, "skipping unknown voucher in token batch", "voucher_id", vid.String())
				continue
			}
			return nil, "", err
		}
		reqs = append(reqs, token.Request{VoucherID: vid})
	}

	out, id, err = u.tokens.GenerateBatch(ctx, reqs, batchID)
	if err != nil {
		return nil, "", err
	}

	for vid, res := range out {
		if err := u.persistTokens(ctx, res); err != nil {
			u.logger.WarnContext(ctx, "dropping token that could not be stored",
				"voucher_id", vid.String(),
				"batch_id", id,
				"error", err.Error())
			delete(out, vid)
			continue
		}
		u.invalidate(ctx, vid)
	}

	u.metrics.AddTokensIssued(len(out))
	u.logger.InfoContext(ctx, "token batch issued", "batch_id", id, "requested", len(voucherIDs), "issued", len(out))
	return out, id, nil
}

func (u *voucherUseCaseImpl) persistTokens(ctx context.Context, res token.Result) error {
	now := u.clock.Now()
	batchID := res.BatchID
	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		for _, c := range []voucher.Code{
			{Type: voucher.CodeTypeQR, Code: res.QRPayload},
			{Type: voucher.CodeTypeShort, Code: res.ShortCode},
		} {
			c.ID = uuid.New()
			c.VoucherID = res.VoucherID
			c.BatchID = &batchID
			c.IsActive = true
			c.CreatedAt = now
			if err := tx.Codes().Create(ctx, c); err != nil {
				return shared.StoreError(err)
			}
		}
		return nil
	})
}

// CreateStaticCode adds a permanent printed code to a voucher. A generated
// code that collides with an existing one is replaced once.
func (u *voucherUseCaseImpl) CreateStaticCode(ctx context.Context, voucherID uuid.UUID) (*voucher.Code, error) {
	if _, err := shared.LoadVoucher(ctx, u.uow.Repos().Vouchers(), voucherID); err != nil {
		return nil, err
	}

	const attempts = 2
	var lastErr error
	for range attempts {
		raw, err := u.codes.StaticCode()
		if err != nil {
			return nil, err
		}
		c := voucher.Code{
			ID:        uuid.New(),
			VoucherID: voucherID,
			Type:      voucher.CodeTypeStatic,
			Code:      raw,
			IsActive:  true,
			CreatedAt: u.clock.Now(),
		}
		err = u.uow.Repos().Codes().Create(ctx, c)
		if err == nil {
			return &c, nil
		}
		if !infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, shared.StoreError(err)
		}
		lastErr = err
	}
	return nil, shared.StoreError(lastErr)
}
