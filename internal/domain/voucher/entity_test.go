//go:build unit

package voucher_test

import (
	"testing"
	"time"

	"voucher-engine/internal/domain/voucher"
	"voucher-engine/internal/pkg/errs"
	"voucher-engine/internal/testutil/builder"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func TestStatus_TransitionTable(t *testing.T) {
	allowed := map[voucher.Status][]voucher.Status{
		voucher.StatusDraft:     {voucher.StatusPublished},
		voucher.StatusPublished: {voucher.StatusClaimed, voucher.StatusExpired},
		voucher.StatusClaimed:   {voucher.StatusRedeemed, voucher.StatusExpired},
		voucher.StatusRedeemed:  {voucher.StatusExpired},
	}

	for _, from := range voucher.AllStatuses {
		for _, to := range voucher.AllStatuses {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			t.Run(string(from)+"->"+string(to), func(t *testing.T) {
				v := builder.NewVoucherBuilder().WithState(from).Build()
				err := v.TransitionTo(to, now)
				if want {
					require.NoError(t, err)
					assert.Equal(t, to, v.State())
					return
				}
				require.Error(t, err)
				assert.True(t, errs.Is(err, errs.ErrBusinessRuleViolation))
				assert.True(t, errs.Is(err, voucher.ErrInvalidTransition))
				assert.Contains(t, err.Error(), string(from))
				assert.Equal(t, from, v.State())
			})
		}
	}
}

func TestValidateTransition_NamesAllowedSet(t *testing.T) {
	err := voucher.ValidateTransition(voucher.StatusPublished, voucher.StatusDraft)
	require.Error(t, err)
	assert.Equal(t, "cannot transition voucher from published to draft; allowed: [claimed, expired]", err.Error())
}

func TestVoucher_PublishWindow(t *testing.T) {
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	t.Run("validFrom in the future", func(t *testing.T) {
		v := builder.NewVoucherBuilder().WithWindow(&future, nil).Build()
		err := v.TransitionTo(voucher.StatusPublished, now)
		require.Error(t, err)
		assert.True(t, errs.Is(err, voucher.ErrPublishWindow))
		assert.True(t, errs.Is(err, errs.ErrBusinessRuleViolation))
		assert.Contains(t, err.Error(), "validFrom")
	})

	t.Run("validUntil in the past", func(t *testing.T) {
		v := builder.NewVoucherBuilder().WithWindow(nil, &past).Build()
		err := v.TransitionTo(voucher.StatusPublished, now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validUntil")
	})

	t.Run("open window", func(t *testing.T) {
		v := builder.NewVoucherBuilder().WithWindow(&past, &future).Build()
		require.NoError(t, v.TransitionTo(voucher.StatusPublished, now))
	})

	t.Run("window ignored for other targets", func(t *testing.T) {
		v := builder.NewVoucherBuilder().WithState(voucher.StatusPublished).WithWindow(nil, &past).Build()
		require.NoError(t, v.TransitionTo(voucher.StatusExpired, now))
	})
}

func TestVoucher_Suspend(t *testing.T) {
	for _, st := range []voucher.Status{voucher.StatusDraft, voucher.StatusPublished, voucher.StatusClaimed, voucher.StatusRedeemed} {
		v := builder.NewVoucherBuilder().WithState(st).Build()
		require.NoError(t, v.Suspend(now), st)
		assert.Equal(t, voucher.StatusSuspended, v.State())
	}

	for _, st := range []voucher.Status{voucher.StatusExpired, voucher.StatusSuspended} {
		v := builder.NewVoucherBuilder().WithState(st).Build()
		err := v.Suspend(now)
		assert.True(t, errs.Is(err, errs.ErrBusinessRuleViolation), st)
	}
}

func TestNewVoucher(t *testing.T) {
	t.Run("starts in draft with default per-user limit", func(t *testing.T) {
		v, err := builder.NewVoucherBuilder().With(func(b *builder.VoucherBuilder) {
			b.State = voucher.StatusPublished
			b.MaxRedemptionsPerUser = 0
		}).BuildNew()
		require.NoError(t, err)
		assert.Equal(t, voucher.StatusDraft, v.State())
		assert.Equal(t, 1, v.MaxRedemptionsPerUser())
		assert.Zero(t, v.RedemptionsCount())
	})

	cases := []struct {
		name   string
		mutate func(*builder.VoucherBuilder)
		errIs  error
	}{
		{
			name:   "empty title",
			mutate: func(b *builder.VoucherBuilder) { b.Title = "  " },
			errIs:  voucher.ErrInvalidTitle,
		},
		{
			name: "inverted window",
			mutate: func(b *builder.VoucherBuilder) {
				from, until := now.Add(time.Hour), now
				b.ValidFrom, b.ValidUntil = &from, &until
			},
			errIs: voucher.ErrInvalidValidityWindow,
		},
		{
			name:   "zero max redemptions",
			mutate: func(b *builder.VoucherBuilder) { b.WithMaxRedemptions(0) },
			errIs:  voucher.ErrInvalidRedemptionLimit,
		},
		{
			name:   "negative per-user limit",
			mutate: func(b *builder.VoucherBuilder) { b.MaxRedemptionsPerUser = -1 },
			errIs:  voucher.ErrInvalidRedemptionLimit,
		},
		{
			name:   "percentage above 100",
			mutate: func(b *builder.VoucherBuilder) { b.DiscountValue = decimal.NewFromInt(101) },
			errIs:  voucher.ErrInvalidDiscount,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := builder.NewVoucherBuilder().With(tc.mutate).BuildNew()
			require.Error(t, err)
			assert.True(t, errs.Is(err, tc.errIs))
			assert.True(t, errs.Is(err, errs.ErrValidation))
		})
	}
}

func TestVoucher_Capacity(t *testing.T) {
	v := builder.NewVoucherBuilder().Build()
	assert.True(t, v.HasRedemptionCapacity())

	v = builder.NewVoucherBuilder().WithMaxRedemptions(2).With(func(b *builder.VoucherBuilder) { b.RedemptionsCount = 1 }).Build()
	assert.True(t, v.HasRedemptionCapacity())

	v = builder.NewVoucherBuilder().WithMaxRedemptions(2).With(func(b *builder.VoucherBuilder) { b.RedemptionsCount = 2 }).Build()
	assert.False(t, v.HasRedemptionCapacity())
}

func TestDiscount_Apply(t *testing.T) {
	pct, err := voucher.NewDiscount(voucher.DiscountPercentage, decimal.NewFromInt(25))
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("7.50").Equal(pct.Apply(decimal.NewFromInt(10))))

	fixed, err := voucher.NewDiscount(voucher.DiscountFixed, decimal.NewFromInt(15))
	require.NoError(t, err)
	assert.True(t, decimal.Zero.Equal(fixed.Apply(decimal.NewFromInt(10))))
	assert.True(t, decimal.NewFromInt(5).Equal(fixed.Apply(decimal.NewFromInt(20))))

	_, err = voucher.NewDiscount(voucher.DiscountFixed, decimal.NewFromInt(-1))
	assert.True(t, errs.Is(err, voucher.ErrInvalidDiscount))
}

func TestParseClosedSets(t *testing.T) {
	src, err := voucher.ParseScanSource("Camera")
	require.NoError(t, err)
	assert.Equal(t, voucher.ScanSourceCamera, src)
	_, err = voucher.ParseScanSource("nfc")
	assert.True(t, errs.Is(err, voucher.ErrInvalidScanSource))

	typ, err := voucher.ParseScanType("business")
	require.NoError(t, err)
	assert.Equal(t, voucher.ScanTypeBusiness, typ)
	_, err = voucher.ParseScanType("robot")
	assert.True(t, errs.Is(err, voucher.ErrInvalidScanType))

	ct, err := voucher.ParseCodeType("SHORT")
	require.NoError(t, err)
	assert.Equal(t, voucher.CodeTypeShort, ct)
	_, err = voucher.ParseCodeType("barcode")
	assert.True(t, errs.Is(err, voucher.ErrInvalidCodeType))
}
