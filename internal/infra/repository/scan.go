package repository

import (
	"context"

	"voucher-engine/internal/domain/voucher"
	"voucher-engine/internal/infra"
	"voucher-engine/internal/infra/db"
)

type ScanRepository struct {
	dbtx db.DBTX
}

func NewScanRepository(dbtx db.DBTX) *ScanRepository {
	return &ScanRepository{dbtx: dbtx}
}

func (r *ScanRepository) Create(ctx context.Context, s voucher.Scan) error {
	_, err := r.dbtx.Exec(ctx, `
		INSERT INTO voucher_scans (id, voucher_id, user_id, business_id, scan_type, scan_source, metadata, scanned_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.ID, s.VoucherID, s.UserID, s.BusinessID, string(s.Type), string(s.Source), s.Metadata, s.ScannedAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to record scan", err)
	}
	return nil
}
