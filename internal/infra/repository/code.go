package repository

import (
	"context"
	"errors"

	"voucher-engine/internal/domain/voucher"
	"voucher-engine/internal/infra"
	"voucher-engine/internal/infra/db"

	"github.com/jackc/pgx/v5"
)

type CodeRepository struct {
	dbtx db.DBTX
}

func NewCodeRepository(dbtx db.DBTX) *CodeRepository {
	return &CodeRepository{dbtx: dbtx}
}

func (r *CodeRepository) Create(ctx context.Context, c voucher.Code) error {
	_, err := r.dbtx.Exec(ctx, `
		INSERT INTO voucher_codes (id, voucher_id, type, code, batch_id, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.VoucherID, string(c.Type), c.Code, c.BatchID, c.IsActive, c.CreatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create voucher code", err)
	}
	return nil
}

func (r *CodeRepository) FindByCode(ctx context.Context, code string) (*voucher.Code, error) {
	var (
		c     voucher.Code
		ctype string
	)
	err := r.dbtx.QueryRow(ctx, `
		SELECT id, voucher_id, type, code, batch_id, is_active, created_at
		FROM voucher_codes
		WHERE code = $1 AND is_active`,
		code,
	).Scan(&c.ID, &c.VoucherID, &ctype, &c.Code, &c.BatchID, &c.IsActive, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("voucher code not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find voucher code", err)
	}
	if c.Type, err = voucher.ParseCodeType(ctype); err != nil {
		return nil, infra.WrapRepoErr("stored voucher code has unknown type", err)
	}
	return &c, nil
}
