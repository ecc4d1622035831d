package bookpdf

import (
	"context"
	"fmt"
	"time"

	"voucher-engine/internal/pkg/errs"
	"voucher-engine/internal/usecase/readmodel"
	"voucher-engine/internal/usecase/shared"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

const entryRowHeight = 45

// Renderer lays out a book as a cover followed by one PDF page per book
// page. Entries carry their voucher's QR payload.
type Renderer struct{}

var _ shared.BookRenderer = (*Renderer)(nil)

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) RenderBook(ctx context.Context, book readmodel.BookRM) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "{current} / {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)
	m.AddPages(coverPage(book))

	byPage := make(map[int][]readmodel.BookEntryRM, book.TotalPages)
	for _, e := range book.Entries {
		byPage[e.PageNumber] = append(byPage[e.PageNumber], e)
	}
	for n := 1; n <= book.TotalPages; n++ {
		if err := ctx.Err(); err != nil {
			return nil, errs.Wrapf(err, "render book %s", book.ID)
		}
		m.AddPages(bookPage(n, byPage[n]))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate book pdf")
	}
	return doc.GetBytes(), nil
}

func coverPage(book readmodel.BookRM) core.Page {
	issue := ""
	if book.Month >= 1 && book.Month <= 12 && book.Year > 0 {
		issue = fmt.Sprintf("%s %d", time.Month(book.Month), book.Year)
	}
	return page.New().Add(
		row.New(60),
		text.NewRow(20, book.Title, props.Text{Size: 24, Style: fontstyle.Bold, Align: align.Center}),
		text.NewRow(10, book.Edition, props.Text{Size: 12, Align: align.Center}),
		text.NewRow(10, issue, props.Text{Size: 12, Align: align.Center}),
		text.NewRow(30, book.Description, props.Text{Size: 10, Top: 10, Align: align.Center}),
	)
}

func bookPage(number int, entries []readmodel.BookEntryRM) core.Page {
	rows := []core.Row{
		text.NewRow(12, fmt.Sprintf("Page %d", number), props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
	}
	for _, e := range entries {
		qr := col.New(4)
		if e.QRCode != "" {
			qr = code.NewQrCol(4, e.QRCode, props.Rect{Center: true, Percent: 90})
		}
		rows = append(rows, row.New(entryRowHeight).Add(
			qr,
			col.New(8).Add(
				text.New(e.VoucherTitle, props.Text{Size: 12, Style: fontstyle.Bold}),
				text.New(e.BusinessName, props.Text{Size: 10, Top: 8}),
			),
		))
	}
	return page.New().Add(rows...)
}
