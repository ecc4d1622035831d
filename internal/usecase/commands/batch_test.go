//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"voucher-engine/internal/domain/voucher"
	"voucher-engine/internal/pkg/errs"
	"voucher-engine/internal/testutil/builder"
	"voucher-engine/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchProcess(t *testing.T) {
	ctx := context.Background()

	t.Run("expire keeps input order and isolates failures", func(t *testing.T) {
		h := newHarness(t, nil)
		a := h.seed(published())
		b := h.seed(published().WithState(voucher.StatusDraft))
		c := h.seed(published().WithState(voucher.StatusRedeemed))
		missing := uuid.New()

		res, err := h.batch.BatchProcess(ctx, []uuid.UUID{a.ID(), b.ID(), missing, c.ID()}, "expire", queries.ValidateOptions{})
		require.NoError(t, err)
		assert.Equal(t, 4, res.ProcessedCount)
		assert.Equal(t, 2, res.SuccessCount)
		assert.Equal(t, 2, res.FailedCount)

		require.Len(t, res.Results, 4)
		assert.Equal(t, a.ID(), res.Results[0].VoucherID)
		assert.True(t, res.Results[0].Success)
		assert.False(t, res.Results[1].Success)
		assert.Contains(t, res.Results[1].Error, "draft")
		assert.False(t, res.Results[2].Success)
		assert.Contains(t, res.Results[2].Error, "not found")
		assert.True(t, res.Results[3].Success)

		assert.Equal(t, voucher.StatusExpired, h.load(t, a.ID()).State())
		assert.Equal(t, voucher.StatusDraft, h.load(t, b.ID()).State())
	})

	t.Run("activate publishes drafts", func(t *testing.T) {
		h := newHarness(t, nil)
		ids := make([]uuid.UUID, 0, 12)
		for range 12 {
			ids = append(ids, h.seed(builder.NewVoucherBuilder()).ID())
		}

		res, err := h.batch.BatchProcess(ctx, ids, "ACTIVATE", queries.ValidateOptions{})
		require.NoError(t, err)
		assert.Equal(t, 12, res.SuccessCount)
		for _, id := range ids {
			assert.Equal(t, voucher.StatusPublished, h.load(t, id).State())
		}
	})

	t.Run("validate reports reasons without failing", func(t *testing.T) {
		h := newHarness(t, nil)
		until := baseTime.Add(-time.Hour)
		live := h.seed(published())
		expired := h.seed(published().WithWindow(nil, &until))

		res, err := h.batch.BatchProcess(ctx, []uuid.UUID{live.ID(), expired.ID()}, "validate",
			queries.ValidateOptions{CheckState: true, CheckExpiry: true, CheckRedemptionLimit: true})
		require.NoError(t, err)
		assert.Equal(t, 1, res.SuccessCount)
		assert.True(t, res.Results[0].Validation.IsValid)
		assert.False(t, res.Results[1].Validation.IsValid)
		assert.Contains(t, res.Results[1].Error, "expired")
	})

	t.Run("unknown operation", func(t *testing.T) {
		h := newHarness(t, nil)
		_, err := h.batch.BatchProcess(ctx, []uuid.UUID{uuid.New()}, "delete", queries.ValidateOptions{})
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})

	t.Run("empty batch", func(t *testing.T) {
		h := newHarness(t, nil)
		res, err := h.batch.BatchProcess(ctx, nil, "expire", queries.ValidateOptions{})
		require.NoError(t, err)
		assert.Zero(t, res.ProcessedCount)
	})
}

func TestExpireDue(t *testing.T) {
	ctx := context.Background()

	t.Run("expires only live vouchers past their window", func(t *testing.T) {
		h := newHarness(t, nil)
		past := baseTime.Add(-time.Hour)
		future := baseTime.Add(time.Hour)

		due := h.seed(published().WithWindow(nil, &past))
		dueClaimed := h.seed(published().WithState(voucher.StatusClaimed).WithWindow(nil, &past))
		notDue := h.seed(published().WithWindow(nil, &future))
		draft := h.seed(published().WithState(voucher.StatusDraft).WithWindow(nil, &past))
		open := h.seed(published())

		res, err := h.batch.ExpireDue(ctx, 0)
		require.NoError(t, err)
		assert.Equal(t, 2, res.SuccessCount)
		assert.Zero(t, res.FailedCount)

		assert.Equal(t, voucher.StatusExpired, h.load(t, due.ID()).State())
		assert.Equal(t, voucher.StatusExpired, h.load(t, dueClaimed.ID()).State())
		assert.Equal(t, voucher.StatusPublished, h.load(t, notDue.ID()).State())
		assert.Equal(t, voucher.StatusDraft, h.load(t, draft.ID()).State())
		assert.Equal(t, voucher.StatusPublished, h.load(t, open.ID()).State())
	})

	t.Run("respects the limit", func(t *testing.T) {
		h := newHarness(t, nil)
		for i := range 5 {
			until := baseTime.Add(-time.Duration(i+1) * time.Hour)
			h.seed(published().WithWindow(nil, &until))
		}

		res, err := h.batch.ExpireDue(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, 3, res.ProcessedCount)
	})

	t.Run("nothing due", func(t *testing.T) {
		h := newHarness(t, nil)
		h.seed(published())

		res, err := h.batch.ExpireDue(ctx, 0)
		require.NoError(t, err)
		assert.Zero(t, res.ProcessedCount)
		assert.Empty(t, res.Results)
	})

	t.Run("store failure", func(t *testing.T) {
		h := newHarness(t, nil)
		h.store.FailOn("vouchers.find_expirable", errors.New("statement timeout"))

		_, err := h.batch.ExpireDue(ctx, 0)
		assert.True(t, errs.Is(err, errs.ErrServiceUnavailable))
	})
}
