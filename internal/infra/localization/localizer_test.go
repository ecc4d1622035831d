//go:build unit

package localization_test

import (
	"context"
	"errors"
	"testing"

	"voucher-engine/internal/domain/voucher"
	"voucher-engine/internal/infra/localization"
	"voucher-engine/internal/infra/memstore"
	"voucher-engine/internal/testutil/builder"
	"voucher-engine/internal/usecase/readmodel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalizeVoucher(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	v := builder.NewVoucherBuilder().With(func(b *builder.VoucherBuilder) {
		b.Title = "Free coffee"
		b.Description = "With any pastry"
	}).Build()
	store.Seed(v)

	require.NoError(t, store.Repos().Translations().Upsert(ctx, voucher.Translation{
		VoucherID: v.ID(),
		Lang:      "de",
		Title:     "Gratis Kaffee",
	}))

	l := localization.NewStoreLocalizer(store)
	source := readmodel.FromVoucher(v)

	t.Run("overlays title and keeps source description when empty", func(t *testing.T) {
		got, err := l.LocalizeVoucher(ctx, source, "de-AT")
		require.NoError(t, err)
		assert.Equal(t, "Gratis Kaffee", got.Title)
		assert.Equal(t, "With any pastry", got.Description)
		assert.Equal(t, "de", got.Lang)
		assert.Equal(t, "Free coffee", source.Title)
	})

	t.Run("missing translation falls back", func(t *testing.T) {
		got, err := l.LocalizeVoucher(ctx, source, "fr")
		require.NoError(t, err)
		assert.Equal(t, source, got)
	})

	t.Run("empty language is a no-op", func(t *testing.T) {
		got, err := l.LocalizeVoucher(ctx, source, "")
		require.NoError(t, err)
		assert.Equal(t, source, got)
	})

	t.Run("store failure returns the source view", func(t *testing.T) {
		store.FailOn("translations.find", errors.New("timeout"))
		defer store.FailOn("translations.find", nil)

		got, err := l.LocalizeVoucher(ctx, source, "de")
		require.Error(t, err)
		assert.Equal(t, source, got)
	})
}
