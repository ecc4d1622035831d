//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"voucher-engine/internal/domain/voucher"
	"voucher-engine/internal/infra/cache"
	"voucher-engine/internal/infra/localization"
	"voucher-engine/internal/infra/memstore"
	"voucher-engine/internal/observability/metrics"
	"voucher-engine/internal/pkg/clock"
	"voucher-engine/internal/pkg/codegen"
	"voucher-engine/internal/pkg/config"
	"voucher-engine/internal/pkg/signing"
	"voucher-engine/internal/pkg/token"
	"voucher-engine/internal/testutil/builder"
	"voucher-engine/internal/usecase/commands"
	"voucher-engine/internal/usecase/effects"
	"voucher-engine/internal/usecase/queries"
	"voucher-engine/internal/usecase/shared"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type harness struct {
	store    *memstore.Store
	clock    *clock.MockClock
	metrics  *metrics.Metrics
	tokens   *token.Service
	vouchers commands.VoucherCommands
	queries  queries.VoucherQueries
	batch    commands.BatchCommands
	books    commands.BookCommands
}

// newHarness wires the lifecycle against the in-memory store. A nil cache
// selects the no-op cache.
func newHarness(t *testing.T, c shared.Cache) *harness {
	t.Helper()
	if c == nil {
		c = cache.Noop{}
	}

	store := memstore.New()
	clk := clock.NewMockClock(baseTime)
	m := metrics.NewNop()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	node, err := snowflake.NewNode(3)
	require.NoError(t, err)
	codes := codegen.NewGenerator(node)

	kp, err := signing.GenerateKeyPair()
	require.NoError(t, err)
	tokens := token.NewService(signing.NewStaticProvider(kp), codes, clk, logger, token.Options{Concurrency: 8})

	runner := effects.NewRunner(logger, m)
	localizer := localization.NewStoreLocalizer(store)
	vq := queries.NewVoucherQueries(store, c, localizer, tokens, runner, m, clk, logger, time.Minute)
	vc := commands.NewVoucherUseCase(store, tokens, codes, c, localizer, store.Directory(), vq, runner, m, clk, logger)

	return &harness{
		store:    store,
		clock:    clk,
		metrics:  m,
		tokens:   tokens,
		vouchers: vc,
		queries:  vq,
		batch:    commands.NewBatchUseCase(vc, vq, store, clk, logger, config.NewTestConfig().Batch),
		books:    commands.NewBookUseCase(store, clk, logger),
	}
}

func (h *harness) seed(b *builder.VoucherBuilder) *voucher.Voucher {
	v := b.Build()
	h.store.Seed(v)
	return v
}

func (h *harness) load(t *testing.T, id uuid.UUID) *voucher.Voucher {
	t.Helper()
	v, err := h.store.Repos().Vouchers().FindByID(context.Background(), id)
	require.NoError(t, err)
	return v
}

func published() *builder.VoucherBuilder {
	return builder.NewVoucherBuilder().WithState(voucher.StatusPublished)
}
