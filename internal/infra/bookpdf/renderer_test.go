//go:build unit

package bookpdf_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"voucher-engine/internal/infra/bookpdf"
	"voucher-engine/internal/pkg/errs"
	"voucher-engine/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderBook(t *testing.T) {
	book := readmodel.BookRM{
		ID:          uuid.New(),
		Title:       "Spring Savings",
		Edition:     "1st",
		Month:       4,
		Year:        2025,
		TotalPages:  2,
		Description: "Local deals",
		Entries: []readmodel.BookEntryRM{
			{VoucherID: uuid.New(), VoucherTitle: "Free pretzel", QRCode: "VCH-ABCDEFGHJK", BusinessName: "Bäckerei Lutz", PageNumber: 1},
			{VoucherID: uuid.New(), VoucherTitle: "No code yet", PageNumber: 2},
		},
	}

	out, err := bookpdf.NewRenderer().RenderBook(context.Background(), book)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderBook_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := bookpdf.NewRenderer().RenderBook(ctx, readmodel.BookRM{Title: "x", TotalPages: 3})
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, errs.Is(err, context.Canceled))
	assert.Contains(t, strings.Join(errs.ExtractStackLines(err, 0), "\n"), "RenderBook")
}
