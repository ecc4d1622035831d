package uow

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"voucher-engine/internal/infra/db"
	"voucher-engine/internal/infra/repository"
	"voucher-engine/internal/observability/tracing"
	"voucher-engine/internal/pkg/errs"
	"voucher-engine/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"

	maxRetries  = 3
	backoffBase = 100 * time.Millisecond
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewPostgresUoW(pool *pgxpool.Pool, logger *slog.Logger) shared.UnitOfWork {
	return &PostgresUoW{
		pool:   pool,
		logger: logger,
	}
}

// Within runs fn in a ReadCommitted transaction and retries it on
// serialization failures and deadlocks. Every check-then-act inside fn is a
// single conditional statement, so row locks are what serialize competing
// claims and redemptions.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) (err error) {
	ctx, span := tracing.Start(ctx, "uow.Within")
	defer func() { tracing.End(span, err) }()

	for attempt := 0; ; attempt++ {
		span.SetAttributes(attribute.Int("db.tx.attempt", attempt+1))

		err = u.attempt(ctx, fn)
		if err == nil {
			return nil
		}
		if !isRetryableError(err) {
			return err
		}
		if attempt == maxRetries {
			u.logger.ErrorContext(ctx, "transaction failed after max retries", "attempts", attempt+1, "error", err.Error())
			return errs.Mark(err, errMaxRetriesExceeded)
		}

		wait := calculateBackoff(attempt, backoffBase)
		u.logger.WarnContext(ctx, "retrying transaction",
			"attempt", attempt+1,
			"wait_ms", wait.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// Repos runs each statement on its own pooled connection.
func (u *PostgresUoW) Repos() shared.Tx {
	return &pgTx{dbtx: u.pool}
}

// attempt rolls back explicitly so failed attempts never hold a connection
// into the backoff.
func (u *PostgresUoW) attempt(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	err = fn(ctx, &pgTx{dbtx: pgxTx})
	if err == nil {
		if err = pgxTx.Commit(ctx); err == nil {
			return nil
		}
		err = errs.Mark(err, errTransactionCommit)
	}

	if rbErr := pgxTx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
		u.logger.WarnContext(ctx, "rollback failed", "error", rbErr.Error())
	}
	return err
}

// calculateBackoff doubles per attempt and adds up to 20% jitter.
func calculateBackoff(attempt int, base time.Duration) time.Duration {
	wait := time.Duration(1<<attempt) * base
	if j := int64(wait / 5); j > 0 {
		wait += time.Duration(rand.Int64N(j))
	}
	return wait
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgErrCodeSerializationFailure || pgErr.Code == pgErrCodeDeadlockDetected
}

type pgTx struct {
	dbtx db.DBTX

	vouchers     shared.VoucherRepository
	claims       shared.ClaimRepository
	scans        shared.ScanRepository
	codes        shared.CodeRepository
	books        shared.BookRepository
	translations shared.TranslationRepository
}

func (t *pgTx) Vouchers() shared.VoucherRepository {
	if t.vouchers == nil {
		t.vouchers = repository.NewVoucherRepository(t.dbtx)
	}
	return t.vouchers
}

func (t *pgTx) Claims() shared.ClaimRepository {
	if t.claims == nil {
		t.claims = repository.NewClaimRepository(t.dbtx)
	}
	return t.claims
}

func (t *pgTx) Scans() shared.ScanRepository {
	if t.scans == nil {
		t.scans = repository.NewScanRepository(t.dbtx)
	}
	return t.scans
}

func (t *pgTx) Codes() shared.CodeRepository {
	if t.codes == nil {
		t.codes = repository.NewCodeRepository(t.dbtx)
	}
	return t.codes
}

func (t *pgTx) Books() shared.BookRepository {
	if t.books == nil {
		t.books = repository.NewBookRepository(t.dbtx)
	}
	return t.books
}

func (t *pgTx) Translations() shared.TranslationRepository {
	if t.translations == nil {
		t.translations = repository.NewTranslationRepository(t.dbtx)
	}
	return t.translations
}
