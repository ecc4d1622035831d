package repository

import (
	"context"
	"errors"
	"time"

	"voucher-engine/internal/domain/voucher"
	"voucher-engine/internal/infra"
	"voucher-engine/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ClaimRepository struct {
	dbtx db.DBTX
}

func NewClaimRepository(dbtx db.DBTX) *ClaimRepository {
	return &ClaimRepository{dbtx: dbtx}
}

func (r *ClaimRepository) InsertIfAbsent(ctx context.Context, c voucher.Claim) (bool, error) {
	tag, err := r.dbtx.Exec(ctx, `
		INSERT INTO customer_vouchers (id, customer_id, voucher_id, status, claimed_at, redeemed_at, redemption_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT ON CONSTRAINT customer_vouchers_customer_voucher_key DO NOTHING`,
		c.ID, c.CustomerID, c.VoucherID, string(c.Status), c.ClaimedAt, c.RedeemedAt, c.RedemptionCode,
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to insert claim", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *ClaimRepository) FindByCustomerAndVoucher(ctx context.Context, customerID, voucherID uuid.UUID) (*voucher.Claim, error) {
	var (
		c      voucher.Claim
		status string
	)
	err := r.dbtx.QueryRow(ctx, `
		SELECT id, customer_id, voucher_id, status, claimed_at, redeemed_at, redemption_code
		FROM customer_vouchers
		WHERE customer_id = $1 AND voucher_id = $2`,
		customerID, voucherID,
	).Scan(&c.ID, &c.CustomerID, &c.VoucherID, &status, &c.ClaimedAt, &c.RedeemedAt, &c.RedemptionCode)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("claim not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find claim", err)
	}
	c.Status = voucher.ClaimStatus(status)
	return &c, nil
}

func (r *ClaimRepository) MarkRedeemed(ctx context.Context, claimID uuid.UUID, redemptionCode *string, at time.Time) (bool, error) {
	tag, err := r.dbtx.Exec(ctx, `
		UPDATE customer_vouchers
		SET status = 'redeemed', redeemed_at = $2, redemption_code = $3
		WHERE id = $1 AND status = 'claimed'`,
		claimID, at, redemptionCode,
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to mark claim redeemed", err)
	}
	return tag.RowsAffected() == 1, nil
}
