//go:build unit

package api_test

import (
	"net/http"

	"voucher-engine/internal/domain/voucherbook"
	reqdto "voucher-engine/internal/handler/dto/request"
	resdto "voucher-engine/internal/handler/dto/response"
	"voucher-engine/internal/pkg/errs"
	"voucher-engine/internal/testutil"
	"voucher-engine/internal/testutil/httptest"
	"voucher-engine/internal/usecase/commands"
	"voucher-engine/internal/usecase/readmodel"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"
)

func (s *VoucherHandlerTestSuite) TestBookCreate() {
	valid := reqdto.CreateBookRequest{Title: "Winter Deals", Month: 12, Year: 2025, TotalPages: 24}

	tests := []struct {
		name   string
		mutate func(m map[string]any)
	}{
		{"month above twelve", testutil.Field("month", 13)},
		{"year too early", testutil.Field("year", 1999)},
		{"cover must be a url", testutil.Field("cover_image_url", "not a url")},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			body := testutil.DtoMap(s.T(), valid, tt.mutate)
			w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/books", body, s.tokens.Admin(s.T()))
			httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "")
		})
	}

	s.Run("created", func() {
		id := uuid.New()
		s.mockBooks.EXPECT().CreateBook(gomock.Any(), commands.CreateBookInput{Title: "Winter Deals", Month: 12, Year: 2025, TotalPages: 24}).
			Return(&readmodel.BookRM{ID: id, Title: "Winter Deals", Status: "draft"}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/books", valid, s.tokens.Admin(s.T()))
		var resp resdto.BookResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &resp)
		s.Equal("draft", resp.Status)
		httptest.AssertHeaders(s.T(), w, map[string]string{"Location": "/api/books/" + id.String()})
	})

	s.Run("business staff cannot manage books", func() {
		tok, _ := s.tokens.Business(s.T(), uuid.New())
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/books", valid, tok)
		httptest.AssertErrorResponse(s.T(), w, http.StatusForbidden, "forbidden")
	})
}

func (s *VoucherHandlerTestSuite) TestBookEntries() {
	bookID := uuid.New()
	voucherID := uuid.New()
	path := "/api/books/" + bookID.String() + "/entries"

	s.Run("placed", func() {
		in := commands.AddBookEntryInput{BookID: bookID, VoucherID: voucherID, PageNumber: 3, Position: 2}
		s.mockBooks.EXPECT().AddBookEntry(gomock.Any(), in).
			Return(&voucherbook.Entry{ID: uuid.New(), BookID: bookID, VoucherID: voucherID, PageNumber: 3, Position: 2}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, path,
			reqdto.AddBookEntryRequest{VoucherID: voucherID, PageNumber: 3, Position: 2}, s.tokens.Admin(s.T()))
		var resp resdto.BookEntryResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &resp)
		s.Equal(3, resp.PageNumber)
	})

	s.Run("duplicate placement", func() {
		s.mockBooks.EXPECT().AddBookEntry(gomock.Any(), gomock.Any()).
			Return(nil, errs.Reason(voucherbook.ErrDuplicateEntry, "voucher %s is already in this book", voucherID))

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, path,
			reqdto.AddBookEntryRequest{VoucherID: voucherID, PageNumber: 1}, s.tokens.Admin(s.T()))
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "duplicate_entry")
	})
}

func (s *VoucherHandlerTestSuite) TestBookTransitionAndReadiness() {
	id := uuid.New()

	s.Run("not ready", func() {
		s.mockBooks.EXPECT().TransitionBook(gomock.Any(), id, "ready_for_print").
			Return(nil, errs.Reason(voucherbook.ErrNotReady, "book is missing: description, month"))

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/books/"+id.String()+"/transition",
			reqdto.TransitionRequest{Status: "ready_for_print"}, s.tokens.Admin(s.T()))
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "book_not_ready")
	})

	s.Run("readiness checklist is never null", func() {
		s.mockBookQ.EXPECT().Readiness(gomock.Any(), id).Return(voucherbook.ReadinessCheck{Allowed: true}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/books/"+id.String()+"/readiness", nil, s.tokens.Admin(s.T()))
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, nil)
		s.JSONEq(`{"allowed":true,"required_fields":[]}`, w.Body.String())
	})
}

func (s *VoucherHandlerTestSuite) TestBookPDF() {
	id := uuid.New()
	s.mockBookQ.EXPECT().RenderPDF(gomock.Any(), id).Return([]byte("%PDF-1.7 body"), nil)

	w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/books/"+id.String()+"/pdf", nil, s.tokens.Admin(s.T()))
	s.Equal(http.StatusOK, w.Code)
	s.Equal("application/pdf", w.Header().Get("Content-Type"))
	s.Contains(w.Header().Get("Content-Disposition"), id.String())
	s.Equal("%PDF-1.7 body", w.Body.String())
}
