package repository

import (
	"context"
	"errors"

	"voucher-engine/internal/infra"
	"voucher-engine/internal/infra/db"
	"voucher-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// BusinessDirectory reads the businesses table. Writes belong to the
// business service that owns it.
type BusinessDirectory struct {
	dbtx db.DBTX
}

func NewBusinessDirectory(dbtx db.DBTX) *BusinessDirectory {
	return &BusinessDirectory{dbtx: dbtx}
}

func (d *BusinessDirectory) FindBusiness(ctx context.Context, id uuid.UUID) (*shared.Business, error) {
	var b shared.Business
	err := d.dbtx.QueryRow(ctx, `SELECT id, name FROM businesses WHERE id = $1`, id).Scan(&b.ID, &b.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("business not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find business", err)
	}
	return &b, nil
}
