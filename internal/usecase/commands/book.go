package commands

import (
	"context"
	"log/slog"

	"voucher-engine/internal/domain/voucherbook"
	"voucher-engine/internal/pkg/clock"
	"voucher-engine/internal/pkg/errs"
	"voucher-engine/internal/usecase/readmodel"
	"voucher-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateBookInput struct {
	Title         string
	Description   string
	Edition       string
	Month         int
	Year          int
	TotalPages    int
	CoverImageURL *string
	BackImageURL  *string
}

type AddBookEntryInput struct {
	BookID     uuid.UUID
	VoucherID  uuid.UUID
	PageNumber int
	Position   int
}

type BookCommands interface {
	CreateBook(ctx context.Context, in CreateBookInput) (*readmodel.BookRM, error)
	AddBookEntry(ctx context.Context, in AddBookEntryInput) (*voucherbook.Entry, error)
	TransitionBook(ctx context.Context, bookID uuid.UUID, target string) (*readmodel.BookRM, error)
}

type bookUseCaseImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	logger *slog.Logger
}

func NewBookUseCase(uow shared.UnitOfWork, clk clock.Clock, logger *slog.Logger) BookCommands {
	return &bookUseCaseImpl{
		uow:    uow,
		clock:  clk,
		logger: logger,
	}
}

func (u *bookUseCaseImpl) CreateBook(ctx context.Context, in CreateBookInput) (*readmodel.BookRM, error) {
	b, err := voucherbook.NewBook(uuid.New(), voucherbook.NewBookParams{
		Title:         in.Title,
		Description:   in.Description,
		Edition:       in.Edition,
		Month:         in.Month,
		Year:          in.Year,
		TotalPages:    in.TotalPages,
		CoverImageURL: in.CoverImageURL,
		BackImageURL:  in.BackImageURL,
	}, u.clock.Now())
	if err != nil {
		return nil, err
	}

	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return shared.StoreError(tx.Books().Create(ctx, b))
	})
	if err != nil {
		return nil, err
	}

	u.logger.InfoContext(ctx, "voucher book created", "book_id", b.ID().String())
	view := readmodel.FromBook(b)
	return &view, nil
}

// AddBookEntry places a voucher on a page of a draft book. A voucher appears
// in a book at most once.
func (u *bookUseCaseImpl) AddBookEntry(ctx context.Context, in AddBookEntryInput) (*voucherbook.Entry, error) {
	now := u.clock.Now()
	entry := voucherbook.Entry{
		ID:         uuid.New(),
		BookID:     in.BookID,
		VoucherID:  in.VoucherID,
		PageNumber: in.PageNumber,
		Position:   in.Position,
		CreatedAt:  now,
	}

	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := shared.LockBook(ctx, tx.Books(), in.BookID)
		if err != nil {
			return err
		}
		if err := b.ValidateNewEntry(in.PageNumber); err != nil {
			return err
		}
		if _, err := shared.LoadVoucher(ctx, tx.Vouchers(), in.VoucherID); err != nil {
			return err
		}

		added, err := tx.Books().AddEntry(ctx, entry)
		if err != nil {
			return shared.StoreError(err)
		}
		if !added {
			return errs.Reason(voucherbook.ErrDuplicateEntry, "voucher %s is already placed in book %s", in.VoucherID, in.BookID)
		}
		return shared.StoreError(tx.Books().IncrementVoucherCount(ctx, in.BookID, now))
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// TransitionBook applies the book table. Moving towards print also requires
// every publication field to be present.
func (u *bookUseCaseImpl) TransitionBook(ctx context.Context, bookID uuid.UUID, target string) (*readmodel.BookRM, error) {
	to, err := voucherbook.ParseStatus(target)
	if err != nil {
		return nil, err
	}

	now := u.clock.Now()
	var view readmodel.BookRM
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := shared.LockBook(ctx, tx.Books(), bookID)
		if err != nil {
			return err
		}
		from := b.Status()
		if err := b.TransitionTo(to, now); err != nil {
			return err
		}
		ok, err := tx.Books().UpdateStatus(ctx, bookID, from, to, now)
		if err != nil {
			return shared.StoreError(err)
		}
		if !ok {
			return errs.Reason(voucherbook.ErrInvalidTransition, "book %s changed state concurrently; retry", bookID)
		}
		view = readmodel.FromBook(b)
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.logger.InfoContext(ctx, "voucher book state changed", "book_id", bookID.String(), "status", view.Status)
	return &view, nil
}
