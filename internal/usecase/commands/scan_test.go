//go:build unit

package commands_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"voucher-engine/internal/domain/voucher"
	"voucher-engine/internal/pkg/errs"
	"voucher-engine/internal/testutil/builder"
	"voucher-engine/internal/usecase/commands"
	"voucher-engine/internal/usecase/effects"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	ctx := context.Background()
	scanBy := func(voucherID uuid.UUID, user *uuid.UUID) commands.ScanInput {
		return commands.ScanInput{
			VoucherID: voucherID,
			UserID:    user,
			Source:    "camera",
			Type:      "customer",
			Metadata:  voucher.ScanMetadata{DeviceID: "dev-1", Platform: "ios"},
		}
	}

	t.Run("records the scan and reports claimability", func(t *testing.T) {
		h := newHarness(t, nil)
		v := h.seed(published())
		user := uuid.New()

		res, err := h.vouchers.Scan(ctx, scanBy(v.ID(), &user))
		require.NoError(t, err)
		assert.NotZero(t, res.ScanID)
		assert.True(t, res.CanClaim)
		assert.False(t, res.AlreadyClaimed)
		assert.Equal(t, 1, res.Voucher.ScanCount)
		assert.Nil(t, res.Code)

		scans := h.store.Scans()
		require.Len(t, scans, 1)
		assert.Equal(t, res.ScanID, scans[0].ID)
		assert.Equal(t, voucher.ScanSourceCamera, scans[0].Source)
		assert.Equal(t, "dev-1", scans[0].Metadata.DeviceID)
		assert.Equal(t, 1, h.load(t, v.ID()).ScanCount())
		assert.Empty(t, h.store.Claims(v.ID()))
	})

	t.Run("already claimed cannot claim again", func(t *testing.T) {
		h := newHarness(t, nil)
		v := h.seed(published())
		user := uuid.New()
		_, err := h.vouchers.Claim(ctx, v.ID(), user, "")
		require.NoError(t, err)

		res, err := h.vouchers.Scan(ctx, scanBy(v.ID(), &user))
		require.NoError(t, err)
		assert.True(t, res.AlreadyClaimed)
		assert.False(t, res.CanClaim)
	})

	t.Run("anonymous scan never reports claimability", func(t *testing.T) {
		h := newHarness(t, nil)
		v := h.seed(published())

		res, err := h.vouchers.Scan(ctx, scanBy(v.ID(), nil))
		require.NoError(t, err)
		assert.False(t, res.AlreadyClaimed)
		assert.False(t, res.CanClaim)
		assert.Equal(t, 1, res.Voucher.ScanCount)
	})

	t.Run("anonymous scan of an unpublished voucher", func(t *testing.T) {
		h := newHarness(t, nil)
		v := h.seed(published().WithState(voucher.StatusDraft))

		res, err := h.vouchers.Scan(ctx, scanBy(v.ID(), nil))
		require.NoError(t, err)
		assert.False(t, res.AlreadyClaimed)
		assert.False(t, res.CanClaim)
	})

	t.Run("expired window blocks claiming", func(t *testing.T) {
		h := newHarness(t, nil)
		until := baseTime.Add(-time.Minute)
		v := h.seed(published().WithWindow(nil, &until))
		user := uuid.New()

		res, err := h.vouchers.Scan(ctx, scanBy(v.ID(), &user))
		require.NoError(t, err)
		assert.False(t, res.CanClaim)
	})

	t.Run("exhausted voucher blocks claiming", func(t *testing.T) {
		h := newHarness(t, nil)
		v := h.seed(published().WithMaxRedemptions(1).With(func(b *builder.VoucherBuilder) { b.RedemptionsCount = 1 }))
		user := uuid.New()

		res, err := h.vouchers.Scan(ctx, scanBy(v.ID(), &user))
		require.NoError(t, err)
		assert.False(t, res.CanClaim)
	})

	t.Run("foreign business is unauthorized", func(t *testing.T) {
		h := newHarness(t, nil)
		v := h.seed(published())
		other := uuid.New()
		in := scanBy(v.ID(), nil)
		in.Type = "business"
		in.BusinessID = &other

		_, err := h.vouchers.Scan(ctx, in)
		require.Error(t, err)
		assert.True(t, errs.Is(err, voucher.ErrBusinessMismatch))
		assert.True(t, errs.Is(err, errs.ErrUnauthorized))
		assert.Empty(t, h.store.Scans())
	})

	t.Run("owning business may scan", func(t *testing.T) {
		h := newHarness(t, nil)
		v := h.seed(published())
		owner := v.BusinessID()
		in := scanBy(v.ID(), nil)
		in.Type = "business"
		in.BusinessID = &owner

		_, err := h.vouchers.Scan(ctx, in)
		require.NoError(t, err)
	})

	t.Run("invalid source and type", func(t *testing.T) {
		h := newHarness(t, nil)
		v := h.seed(published())

		in := scanBy(v.ID(), nil)
		in.Source = "telepathy"
		_, err := h.vouchers.Scan(ctx, in)
		assert.True(t, errs.Is(err, voucher.ErrInvalidScanSource))

		in = scanBy(v.ID(), nil)
		in.Type = "robot"
		_, err = h.vouchers.Scan(ctx, in)
		assert.True(t, errs.Is(err, voucher.ErrInvalidScanType))
	})

	t.Run("recording failures are swallowed", func(t *testing.T) {
		h := newHarness(t, nil)
		v := h.seed(published())
		h.store.FailOn("scans.create", errors.New("audit table locked"))
		h.store.FailOn("vouchers.increment_scans", errors.New("row lock timeout"))
		user := uuid.New()

		res, err := h.vouchers.Scan(ctx, scanBy(v.ID(), &user))
		require.NoError(t, err)
		assert.True(t, res.CanClaim)
		assert.Equal(t, 0, res.Voucher.ScanCount)
		assert.Empty(t, h.store.Scans())
		assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.EffectFailures().WithLabelValues(effects.ScanRecord)))
		assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.EffectFailures().WithLabelValues(effects.ScanCount)))
	})
}

func TestScanCode(t *testing.T) {
	ctx := context.Background()
	in := commands.ScanInput{Source: "camera", Type: "customer"}

	t.Run("signed payload", func(t *testing.T) {
		h := newHarness(t, nil)
		v := h.seed(published())
		issued, err := h.vouchers.IssueTokens(ctx, v.ID(), "", 0)
		require.NoError(t, err)

		res, err := h.vouchers.ScanCode(ctx, issued.QRPayload, in)
		require.NoError(t, err)
		assert.Equal(t, v.ID(), res.Voucher.ID)
		require.NotNil(t, res.Code)
		assert.Equal(t, voucher.CodeTypeQR, res.Code.Type)
		assert.Equal(t, issued.BatchID, res.Code.BatchID)
	})

	t.Run("short code typed without dash in lower case", func(t *testing.T) {
		h := newHarness(t, nil)
		v := h.seed(published())
		issued, err := h.vouchers.IssueTokens(ctx, v.ID(), "", 0)
		require.NoError(t, err)

		typed := issued.ShortCode[:4] + issued.ShortCode[5:]
		res, err := h.vouchers.ScanCode(ctx, strings.ToLower(typed), in)
		require.NoError(t, err)
		assert.Equal(t, v.ID(), res.Voucher.ID)
		assert.Equal(t, voucher.CodeTypeShort, res.Code.Type)
		assert.Equal(t, issued.BatchID, res.Code.BatchID)
	})

	t.Run("static code", func(t *testing.T) {
		h := newHarness(t, nil)
		v := h.seed(published())
		code, err := h.vouchers.CreateStaticCode(ctx, v.ID())
		require.NoError(t, err)

		res, err := h.vouchers.ScanCode(ctx, code.Code, in)
		require.NoError(t, err)
		assert.Equal(t, v.ID(), res.Voucher.ID)
		assert.Equal(t, voucher.CodeTypeStatic, res.Code.Type)
	})

	t.Run("tampered payload is rejected", func(t *testing.T) {
		h := newHarness(t, nil)
		v := h.seed(published())
		issued, err := h.vouchers.IssueTokens(ctx, v.ID(), "", 0)
		require.NoError(t, err)

		_, err = h.vouchers.ScanCode(ctx, issued.QRPayload+"x", in)
		require.Error(t, err)
		assert.True(t, errs.Is(err, voucher.ErrTokenRejected))
		assert.Empty(t, h.store.Scans())
	})

	t.Run("unknown short code", func(t *testing.T) {
		h := newHarness(t, nil)
		_, err := h.vouchers.ScanCode(ctx, "ABCD-EFGH", in)
		assert.True(t, errs.Is(err, voucher.ErrCodeNotFound))
	})

	t.Run("garbage", func(t *testing.T) {
		h := newHarness(t, nil)
		_, err := h.vouchers.ScanCode(ctx, "hello", in)
		assert.True(t, errs.Is(err, voucher.ErrInvalidCode))
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})
}
