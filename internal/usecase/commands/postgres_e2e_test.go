//go:build e2e

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"voucher-engine/internal/domain/voucher"
	"voucher-engine/internal/domain/voucherbook"
	"voucher-engine/internal/infra/cache"
	"voucher-engine/internal/infra/localization"
	"voucher-engine/internal/infra/repository"
	"voucher-engine/internal/infra/uow"
	"voucher-engine/internal/observability/metrics"
	"voucher-engine/internal/pkg/clock"
	"voucher-engine/internal/pkg/codegen"
	"voucher-engine/internal/pkg/errs"
	"voucher-engine/internal/pkg/signing"
	"voucher-engine/internal/pkg/token"
	"voucher-engine/internal/testutil/builder"
	"voucher-engine/internal/testutil/dbtest"
	"voucher-engine/internal/testutil/e2e"
	"voucher-engine/internal/usecase/commands"
	"voucher-engine/internal/usecase/effects"
	"voucher-engine/internal/usecase/queries"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pgHarness struct {
	pool     *pgxpool.Pool
	vouchers commands.VoucherCommands
	books    commands.BookCommands
}

func newPostgresHarness(t *testing.T) *pgHarness {
	t.Helper()
	pool, _ := e2e.PrepareDatabase(t, e2e.StartPostgres(t))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clk := clock.NewRealClock()
	m := metrics.NewNop()

	node, err := snowflake.NewNode(5)
	require.NoError(t, err)
	codes := codegen.NewGenerator(node)
	kp, err := signing.GenerateKeyPair()
	require.NoError(t, err)
	tokens := token.NewService(signing.NewStaticProvider(kp), codes, clk, logger, token.Options{Concurrency: 4})

	store := uow.NewPostgresUoW(pool, logger)
	runner := effects.NewRunner(logger, m)
	localizer := localization.NewStoreLocalizer(store)
	vq := queries.NewVoucherQueries(store, cache.Noop{}, localizer, tokens, runner, m, clk, logger, time.Minute)

	return &pgHarness{
		pool: pool,
		vouchers: commands.NewVoucherUseCase(store, tokens, codes, cache.Noop{}, localizer,
			repository.NewBusinessDirectory(pool), vq, runner, m, clk, logger),
		books: commands.NewBookUseCase(store, clk, logger),
	}
}

func (h *pgHarness) seedPublished(t *testing.T, maxRedemptions *int) *voucher.Voucher {
	t.Helper()
	businessID := dbtest.CreateTestBusiness(t, h.pool, "Kaffeehaus Süd")
	b := builder.NewVoucherBuilder().WithState(voucher.StatusPublished)
	b.BusinessID = businessID
	b.MaxRedemptions = maxRedemptions
	b.CreatedAt = time.Now().UTC()
	v := b.Build()
	require.NoError(t, repository.NewVoucherRepository(h.pool).Create(context.Background(), v))
	return v
}

func TestClaimRedeem_Postgres(t *testing.T) {
	h := newPostgresHarness(t)
	ctx := context.Background()

	t.Run("racing claims by one user leave one claim", func(t *testing.T) {
		v := h.seedPublished(t, nil)
		user := uuid.New()
		const attempts = 25

		var (
			wg        sync.WaitGroup
			succeeded atomic.Int32
			rejected  atomic.Int32
		)
		for range attempts {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := h.vouchers.Claim(ctx, v.ID(), user, "")
				switch {
				case err == nil:
					succeeded.Add(1)
				case errs.Is(err, voucher.ErrAlreadyClaimed):
					rejected.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), succeeded.Load())
		assert.Equal(t, int32(attempts-1), rejected.Load())
		assert.Equal(t, 1, dbtest.CountRows(t, h.pool, "customer_vouchers", "voucher_id = $1", v.ID()))

		got, err := repository.NewVoucherRepository(h.pool).FindByID(ctx, v.ID())
		require.NoError(t, err)
		assert.Equal(t, 1, got.ClaimCount())
	})

	t.Run("racing redemptions never exceed the limit", func(t *testing.T) {
		const (
			users = 20
			limit = 5
		)
		maxRedemptions := limit
		v := h.seedPublished(t, &maxRedemptions)

		ids := make([]uuid.UUID, users)
		for i := range ids {
			ids[i] = uuid.New()
			_, err := h.vouchers.Claim(ctx, v.ID(), ids[i], "")
			require.NoError(t, err)
		}

		var (
			wg        sync.WaitGroup
			succeeded atomic.Int32
			limited   atomic.Int32
		)
		for _, user := range ids {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := h.vouchers.Redeem(ctx, commands.RedeemInput{VoucherID: v.ID(), UserID: user})
				switch {
				case err == nil:
					succeeded.Add(1)
				case errs.Is(err, voucher.ErrRedemptionLimitReached):
					limited.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(limit), succeeded.Load())
		assert.Equal(t, int32(users-limit), limited.Load())

		got, err := repository.NewVoucherRepository(h.pool).FindByID(ctx, v.ID())
		require.NoError(t, err)
		assert.Equal(t, limit, got.RedemptionsCount())
		assert.Equal(t, limit, dbtest.CountRows(t, h.pool, "customer_vouchers",
			"voucher_id = $1 AND status = 'redeemed'", v.ID()))
	})

	t.Run("foreign business is refused without side effects", func(t *testing.T) {
		v := h.seedPublished(t, nil)
		user := uuid.New()
		_, err := h.vouchers.Claim(ctx, v.ID(), user, "")
		require.NoError(t, err)

		foreign := uuid.New()
		_, err = h.vouchers.Redeem(ctx, commands.RedeemInput{VoucherID: v.ID(), UserID: user, BusinessID: &foreign})
		assert.True(t, errs.Is(err, voucher.ErrBusinessMismatch))
		assert.Equal(t, 0, dbtest.CountRows(t, h.pool, "customer_vouchers",
			"voucher_id = $1 AND status = 'redeemed'", v.ID()))
	})
}

func TestAddBookEntry_WaitsForBookLock(t *testing.T) {
	h := newPostgresHarness(t)
	ctx := context.Background()

	v := h.seedPublished(t, nil)
	book, err := h.books.CreateBook(ctx, commands.CreateBookInput{
		Title:       "Autumn Savings",
		Description: "Deals around the old town",
		Month:       10,
		Year:        2025,
		TotalPages:  4,
	})
	require.NoError(t, err)

	tx, err := h.pool.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback(ctx) }()
	locked := repository.NewBookRepository(tx)
	_, err = locked.FindByIDForUpdate(ctx, book.ID)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := h.books.AddBookEntry(ctx, commands.AddBookEntryInput{BookID: book.ID, VoucherID: v.ID(), PageNumber: 1})
		done <- err
	}()

	select {
	case err := <-done:
		t.Fatalf("entry was added while the book was locked: %v", err)
	case <-time.After(300 * time.Millisecond):
	}

	ok, err := locked.UpdateStatus(ctx, book.ID, voucherbook.StatusDraft, voucherbook.StatusReadyForPrint, time.Now().UTC())
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, tx.Commit(ctx))

	select {
	case err := <-done:
		require.Error(t, err)
		assert.True(t, errs.Is(err, voucherbook.ErrNotEditable))
	case <-time.After(10 * time.Second):
		t.Fatal("entry insert never resumed")
	}
	assert.Equal(t, 0, dbtest.CountRows(t, h.pool, "voucher_book_entries", "book_id = $1", book.ID))
}
