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
	"github.com/shopspring/decimal"
)

const voucherColumns = `id, business_id, category_id, title, description, state,
	discount_kind, discount_value, currency, valid_from, valid_until,
	max_redemptions, max_redemptions_per_user, redemptions_count, scan_count,
	claim_count, qr_code, created_at, updated_at, deleted_at`

type VoucherRepository struct {
	dbtx db.DBTX
}

func NewVoucherRepository(dbtx db.DBTX) *VoucherRepository {
	return &VoucherRepository{dbtx: dbtx}
}

func (r *VoucherRepository) FindByID(ctx context.Context, id uuid.UUID) (*voucher.Voucher, error) {
	row := r.dbtx.QueryRow(ctx, `SELECT `+voucherColumns+` FROM vouchers WHERE id = $1`, id)
	v, err := scanVoucher(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("voucher not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find voucher", err)
	}
	return v, nil
}

func (r *VoucherRepository) Create(ctx context.Context, v *voucher.Voucher) error {
	s := v.Snapshot()
	_, err := r.dbtx.Exec(ctx, `
		INSERT INTO vouchers (`+voucherColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`,
		s.ID, s.BusinessID, s.CategoryID, s.Title, s.Description, string(s.State),
		string(s.Discount.Kind()), s.Discount.Value(), s.Currency.String(), s.ValidFrom, s.ValidUntil,
		s.MaxRedemptions, s.MaxRedemptionsPerUser, s.RedemptionsCount, s.ScanCount,
		s.ClaimCount, s.QRCode, s.CreatedAt, s.UpdatedAt, s.DeletedAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create voucher", err)
	}
	return nil
}

func (r *VoucherRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to voucher.Status, at time.Time) (bool, error) {
	tag, err := r.dbtx.Exec(ctx, `
		UPDATE vouchers SET state = $3, updated_at = $4
		WHERE id = $1 AND state = $2 AND deleted_at IS NULL`,
		id, string(from), string(to), at,
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to update voucher state", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *VoucherRepository) IncrementRedemptionsIfBelowLimit(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	tag, err := r.dbtx.Exec(ctx, `
		UPDATE vouchers
		SET redemptions_count = redemptions_count + 1, updated_at = $2
		WHERE id = $1
		  AND deleted_at IS NULL
		  AND (max_redemptions IS NULL OR redemptions_count < max_redemptions)`,
		id, at,
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to increment redemptions", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *VoucherRepository) IncrementClaimCount(ctx context.Context, id uuid.UUID, at time.Time) error {
	tag, err := r.dbtx.Exec(ctx,
		`UPDATE vouchers SET claim_count = claim_count + 1, updated_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return infra.WrapRepoErr("failed to increment claim count", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("voucher not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *VoucherRepository) IncrementScanCount(ctx context.Context, id uuid.UUID) error {
	tag, err := r.dbtx.Exec(ctx, `UPDATE vouchers SET scan_count = scan_count + 1 WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to increment scan count", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("voucher not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *VoucherRepository) FindExpirable(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	var lim any
	if limit > 0 {
		lim = limit
	}
	rows, err := r.dbtx.Query(ctx, `
		SELECT id FROM vouchers
		WHERE deleted_at IS NULL
		  AND state IN ('published', 'claimed', 'redeemed')
		  AND valid_until < $1
		ORDER BY valid_until
		LIMIT $2`,
		now, lim,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list expirable vouchers", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan expirable vouchers", err)
	}
	return ids, nil
}

func scanVoucher(row pgx.Row) (*voucher.Voucher, error) {
	var (
		s             voucher.Snapshot
		state         string
		discountKind  string
		discountValue decimal.Decimal
		currency      string
	)
	err := row.Scan(
		&s.ID, &s.BusinessID, &s.CategoryID, &s.Title, &s.Description, &state,
		&discountKind, &discountValue, &currency, &s.ValidFrom, &s.ValidUntil,
		&s.MaxRedemptions, &s.MaxRedemptionsPerUser, &s.RedemptionsCount, &s.ScanCount,
		&s.ClaimCount, &s.QRCode, &s.CreatedAt, &s.UpdatedAt, &s.DeletedAt,
	)
	if err != nil {
		return nil, err
	}

	if s.State, err = voucher.ParseStatus(state); err != nil {
		return nil, err
	}
	if s.Discount, err = voucher.NewDiscount(voucher.DiscountKind(discountKind), discountValue); err != nil {
		return nil, err
	}
	if s.Currency, err = voucher.NewCurrency(currency); err != nil {
		return nil, err
	}
	return voucher.ReconstructVoucher(s), nil
}
