package repository

import (
	"context"
	"errors"

	"voucher-engine/internal/domain/voucher"
	"voucher-engine/internal/infra"
	"voucher-engine/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type TranslationRepository struct {
	dbtx db.DBTX
}

func NewTranslationRepository(dbtx db.DBTX) *TranslationRepository {
	return &TranslationRepository{dbtx: dbtx}
}

func (r *TranslationRepository) Find(ctx context.Context, voucherID uuid.UUID, lang string) (*voucher.Translation, error) {
	var t voucher.Translation
	err := r.dbtx.QueryRow(ctx, `
		SELECT voucher_id, lang, title, description
		FROM voucher_translations
		WHERE voucher_id = $1 AND lang = $2`,
		voucherID, lang,
	).Scan(&t.VoucherID, &t.Lang, &t.Title, &t.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("translation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find translation", err)
	}
	return &t, nil
}

func (r *TranslationRepository) Upsert(ctx context.Context, t voucher.Translation) error {
	_, err := r.dbtx.Exec(ctx, `
		INSERT INTO voucher_translations (voucher_id, lang, title, description)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (voucher_id, lang) DO UPDATE
		SET title = EXCLUDED.title, description = EXCLUDED.description`,
		t.VoucherID, t.Lang, t.Title, t.Description,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to upsert translation", err)
	}
	return nil
}
