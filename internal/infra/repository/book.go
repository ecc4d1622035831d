package repository

import (
	"context"
	"errors"
	"time"

	"voucher-engine/internal/domain/voucherbook"
	"voucher-engine/internal/infra"
	"voucher-engine/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const bookColumns = `id, title, description, edition, month, year, status, total_pages,
	voucher_count, cover_image_url, back_image_url, pdf_url, created_at, updated_at, deleted_at`

type BookRepository struct {
	dbtx db.DBTX
}

func NewBookRepository(dbtx db.DBTX) *BookRepository {
	return &BookRepository{dbtx: dbtx}
}

func (r *BookRepository) FindByID(ctx context.Context, id uuid.UUID) (*voucherbook.Book, error) {
	return r.find(ctx, `SELECT `+bookColumns+` FROM voucher_books WHERE id = $1 AND deleted_at IS NULL`, id)
}

// FindByIDForUpdate holds the row lock until the surrounding transaction
// ends, so status changes and entry inserts on one book serialize.
func (r *BookRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*voucherbook.Book, error) {
	return r.find(ctx, `SELECT `+bookColumns+` FROM voucher_books WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`, id)
}

func (r *BookRepository) find(ctx context.Context, query string, id uuid.UUID) (*voucherbook.Book, error) {
	var (
		s      voucherbook.Snapshot
		status string
	)
	err := r.dbtx.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Title, &s.Description, &s.Edition, &s.Month, &s.Year, &status, &s.TotalPages,
		&s.VoucherCount, &s.CoverImageURL, &s.BackImageURL, &s.PDFURL, &s.CreatedAt, &s.UpdatedAt, &s.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("book not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find book", err)
	}
	if s.Status, err = voucherbook.ParseStatus(status); err != nil {
		return nil, infra.WrapRepoErr("stored book has unknown status", err)
	}
	return voucherbook.ReconstructBook(s), nil
}

func (r *BookRepository) Create(ctx context.Context, b *voucherbook.Book) error {
	s := b.Snapshot()
	_, err := r.dbtx.Exec(ctx, `
		INSERT INTO voucher_books (`+bookColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		s.ID, s.Title, s.Description, s.Edition, s.Month, s.Year, string(s.Status), s.TotalPages,
		s.VoucherCount, s.CoverImageURL, s.BackImageURL, s.PDFURL, s.CreatedAt, s.UpdatedAt, s.DeletedAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create book", err)
	}
	return nil
}

func (r *BookRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to voucherbook.Status, at time.Time) (bool, error) {
	tag, err := r.dbtx.Exec(ctx, `
		UPDATE voucher_books SET status = $3, updated_at = $4
		WHERE id = $1 AND status = $2 AND deleted_at IS NULL`,
		id, string(from), string(to), at,
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to update book status", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *BookRepository) AddEntry(ctx context.Context, e voucherbook.Entry) (bool, error) {
	tag, err := r.dbtx.Exec(ctx, `
		INSERT INTO voucher_book_entries (id, book_id, voucher_id, page_number, position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT ON CONSTRAINT voucher_book_entries_book_voucher_key DO NOTHING`,
		e.ID, e.BookID, e.VoucherID, e.PageNumber, e.Position, e.CreatedAt,
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to add book entry", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *BookRepository) IncrementVoucherCount(ctx context.Context, id uuid.UUID, at time.Time) error {
	tag, err := r.dbtx.Exec(ctx,
		`UPDATE voucher_books SET voucher_count = voucher_count + 1, updated_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return infra.WrapRepoErr("failed to increment book voucher count", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("book not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookRepository) ListEntries(ctx context.Context, bookID uuid.UUID) ([]voucherbook.Entry, error) {
	rows, err := r.dbtx.Query(ctx, `
		SELECT id, book_id, voucher_id, page_number, position, created_at
		FROM voucher_book_entries
		WHERE book_id = $1
		ORDER BY page_number, position`,
		bookID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list book entries", err)
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (voucherbook.Entry, error) {
		var e voucherbook.Entry
		err := row.Scan(&e.ID, &e.BookID, &e.VoucherID, &e.PageNumber, &e.Position, &e.CreatedAt)
		return e, err
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan book entries", err)
	}
	return entries, nil
}
