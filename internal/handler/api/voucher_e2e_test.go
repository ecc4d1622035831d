//go:build e2e

package api_test

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	reqdto "voucher-engine/internal/handler/dto/request"
	resdto "voucher-engine/internal/handler/dto/response"
	"voucher-engine/internal/testutil/authtest"
	"voucher-engine/internal/testutil/dbtest"
	"voucher-engine/internal/testutil/e2e"
	"voucher-engine/internal/testutil/httptest"
	"voucher-engine/internal/usecase/shared"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	vouchersURL = "/api/vouchers"
	voucherURL  = "/api/vouchers/%s"
	actionURL   = "/api/vouchers/%s/%s"
	scanURL     = "/api/scan"
	booksURL    = "/api/books"
)

type VoucherE2ESuite struct {
	e2e.SharedSuite
	tokens *authtest.JWTHelper
	admin  string
}

func (s *VoucherE2ESuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.tokens = authtest.NewJWTHelper(s.Config.JWT)
	s.admin = s.tokens.Admin(s.T())
}

func TestVoucherE2ESuite(t *testing.T) {
	suite.Run(t, new(VoucherE2ESuite))
}

// publishedVoucher creates and publishes a voucher through the API.
func (s *VoucherE2ESuite) publishedVoucher(maxRedemptions *int) resdto.VoucherResponse {
	t := s.T()
	businessID := dbtest.CreateTestBusiness(t, s.DB, "Kaffeehaus Ost")

	req := reqdto.CreateVoucherRequest{
		BusinessID:     businessID,
		Title:          "Second coffee free",
		DiscountKind:   "percentage",
		DiscountValue:  decimal.NewFromInt(100),
		Currency:       "EUR",
		MaxRedemptions: maxRedemptions,
	}
	var created resdto.VoucherResponse
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, vouchersURL, req, s.admin)
	httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)
	require.Equal(t, "draft", created.State)

	var published resdto.VoucherResponse
	w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(actionURL, created.ID, "publish"), nil, s.admin)
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &published)
	require.Equal(t, "published", published.State)
	return published
}

func (s *VoucherE2ESuite) TestClaimAndRedeem() {
	s.Run("claim, redeem and the cached view follows", func() {
		t := s.T()
		v := s.publishedVoucher(nil)
		tok, userID := s.tokens.Customer(t)

		// warm the cache
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(voucherURL, v.ID), nil, "")
		httptest.AssertSuccessResponse(t, w, http.StatusOK, nil)
		n, err := s.Redis.Exists(context.Background(), shared.VoucherCacheKey(v.ID, "")).Result()
		require.NoError(t, err)
		require.Equal(t, int64(1), n)

		var claim resdto.ClaimResponse
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(actionURL, v.ID, "claim"), nil, tok)
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &claim)
		require.Equal(t, 1, claim.Voucher.ClaimCount)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(actionURL, v.ID, "claim"), nil, tok)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "already_claimed")

		var redeemed resdto.RedeemResponse
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(actionURL, v.ID, "redeem"),
			reqdto.RedeemRequest{RedemptionCode: "TILL-3"}, tok)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &redeemed)
		require.Equal(t, claim.ClaimID, redeemed.ClaimID)
		require.Equal(t, 1, redeemed.Voucher.RedemptionsCount)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(actionURL, v.ID, "redeem"), nil, tok)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "already_redeemed")

		require.Equal(t, 1, dbtest.CountRows(t, s.DB, "customer_vouchers",
			"customer_id = $1 AND status = 'redeemed' AND redemption_code = 'TILL-3'", userID))

		var view resdto.VoucherResponse
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(voucherURL, v.ID), nil, "")
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &view)
		require.Equal(t, 1, view.RedemptionsCount)
		require.Equal(t, 1, view.ClaimCount)
	})

	s.Run("redeem without a claim", func() {
		t := s.T()
		v := s.publishedVoucher(nil)
		tok, _ := s.tokens.Customer(t)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(actionURL, v.ID, "redeem"), nil, tok)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "not_claimed")
	})

	s.Run("only the owning business redeems for a customer", func() {
		t := s.T()
		v := s.publishedVoucher(nil)
		tok, userID := s.tokens.Customer(t)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(actionURL, v.ID, "claim"), nil, tok)
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, nil)

		otherBusiness := dbtest.CreateTestBusiness(t, s.DB, "Konditorei West")
		foreign, _ := s.tokens.Business(t, otherBusiness)
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(actionURL, v.ID, "redeem"),
			reqdto.RedeemRequest{UserID: &userID}, foreign)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "business_mismatch")
		require.Equal(t, 0, dbtest.CountRows(t, s.DB, "customer_vouchers",
			"customer_id = $1 AND status = 'redeemed'", userID))

		owner, _ := s.tokens.Business(t, v.BusinessID)
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(actionURL, v.ID, "redeem"),
			reqdto.RedeemRequest{UserID: &userID}, owner)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, nil)
	})

	s.Run("suspended voucher cannot be redeemed", func() {
		t := s.T()
		v := s.publishedVoucher(nil)
		tok, _ := s.tokens.Customer(t)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(actionURL, v.ID, "claim"), nil, tok)
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, nil)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(actionURL, v.ID, "suspend"), nil, s.admin)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, nil)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(actionURL, v.ID, "redeem"), nil, tok)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "not_published")
	})
}

func (s *VoucherE2ESuite) TestConcurrency() {
	s.Run("one claim per user under contention", func() {
		t := s.T()
		v := s.publishedVoucher(nil)
		tok, userID := s.tokens.Customer(t)

		codes := s.parallel(20, func(int) int {
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(actionURL, v.ID, "claim"), nil, tok)
			return w.Code
		})

		require.Equal(t, 1, codes[http.StatusCreated], "codes: %v", codes)
		require.Equal(t, 19, codes[http.StatusConflict], "codes: %v", codes)
		require.Equal(t, 1, dbtest.CountRows(t, s.DB, "customer_vouchers", "customer_id = $1", userID))
		require.Equal(t, 1, dbtest.CountRows(t, s.DB, "vouchers", "id = $1 AND claim_count = 1", v.ID))
	})

	s.Run("redemptions never exceed the limit", func() {
		t := s.T()
		limit := 3
		v := s.publishedVoucher(&limit)

		customers := make([]string, 10)
		for i := range customers {
			tok, _ := s.tokens.Customer(t)
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(actionURL, v.ID, "claim"), nil, tok)
			require.Equal(t, http.StatusCreated, w.Code)
			customers[i] = tok
		}

		codes := s.parallel(len(customers), func(i int) int {
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(actionURL, v.ID, "redeem"), nil, customers[i])
			return w.Code
		})

		require.Equal(t, limit, codes[http.StatusOK], "codes: %v", codes)
		require.Equal(t, len(customers)-limit, codes[http.StatusConflict], "codes: %v", codes)
		require.Equal(t, 1, dbtest.CountRows(t, s.DB, "vouchers", "id = $1 AND redemptions_count = $2", v.ID, limit))
		require.Equal(t, limit, dbtest.CountRows(t, s.DB, "customer_vouchers", "voucher_id = $1 AND status = 'redeemed'", v.ID))
	})
}

// parallel runs fn n times at once and counts the returned status codes.
func (s *VoucherE2ESuite) parallel(n int, fn func(i int) int) map[int]int {
	var (
		mu    sync.Mutex
		wg    sync.WaitGroup
		start = make(chan struct{})
		codes = map[int]int{}
	)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			code := fn(i)
			mu.Lock()
			codes[code]++
			mu.Unlock()
		}()
	}
	close(start)
	wg.Wait()
	return codes
}

func (s *VoucherE2ESuite) TestTokensAndScans() {
	s.Run("issued short code scans in any spelling", func() {
		t := s.T()
		v := s.publishedVoucher(nil)

		var issued resdto.TokenResponse
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(actionURL, v.ID, "tokens"),
			reqdto.IssueTokensRequest{BatchID: "window-stickers"}, s.admin)
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &issued)
		require.Regexp(t, `^[A-Z2-9]{4}-[A-Z2-9]{4}$`, issued.ShortCode)

		spelled := strings.ToLower(strings.ReplaceAll(issued.ShortCode, "-", ""))
		var scan resdto.ScanResponse
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, scanURL,
			reqdto.ScanCodeRequest{Code: spelled, Source: "camera"}, "")
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &scan)
		require.NotNil(t, scan.Code)
		require.Equal(t, "short", scan.Code.Type)
		require.Equal(t, "window-stickers", scan.Code.BatchID)
		require.False(t, scan.CanClaim)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, scanURL,
			reqdto.ScanCodeRequest{Code: issued.QRPayload, Source: "gallery"}, "")
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &scan)
		require.Equal(t, "qr", scan.Code.Type)

		require.Equal(t, 2, dbtest.CountRows(t, s.DB, "voucher_scans", "voucher_id = $1", v.ID))
		require.Equal(t, 2, dbtest.CountRows(t, s.DB, "voucher_codes", "voucher_id = $1 AND batch_id = 'window-stickers'", v.ID))

		staff, _ := s.tokens.Business(t, v.BusinessID)
		var verified resdto.VerificationResponse
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/vouchers/tokens/verify",
			reqdto.VerifyTokenRequest{Token: issued.QRPayload}, staff)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &verified)
		require.True(t, verified.Valid)
		require.Equal(t, v.ID.String(), verified.VoucherID)
	})

	s.Run("tampered payload is rejected", func() {
		t := s.T()
		v := s.publishedVoucher(nil)

		var issued resdto.TokenResponse
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(actionURL, v.ID, "tokens"), nil, s.admin)
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &issued)

		parts := strings.Split(issued.QRPayload, ".")
		require.Len(t, parts, 3)
		forged := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, scanURL,
			reqdto.ScanCodeRequest{Code: forged, Source: "camera"}, "")
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "token_rejected")
		require.Zero(t, dbtest.CountRows(t, s.DB, "voucher_scans", "voucher_id = $1", v.ID))
	})

	s.Run("batch omits unknown vouchers", func() {
		t := s.T()
		a := s.publishedVoucher(nil)
		b := s.publishedVoucher(nil)
		missing := uuid.New()

		var batch resdto.BatchTokensResponse
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/vouchers/tokens/batch",
			reqdto.IssueBatchTokensRequest{VoucherIDs: []uuid.UUID{a.ID, missing, b.ID}}, s.admin)
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &batch)

		got := make([]string, 0, len(batch.Tokens))
		for id, tok := range batch.Tokens {
			got = append(got, id)
			require.Equal(t, batch.BatchID, tok.BatchID)
		}
		want := []string{a.ID.String(), b.ID.String()}
		if diff := cmp.Diff(want, got, cmpopts.SortSlices(func(x, y string) bool { return x < y })); diff != "" {
			t.Errorf("batch tokens mismatch (-want +got):\n%s", diff)
		}
	})
}

func (s *VoucherE2ESuite) TestExpiry() {
	s.Run("sweep expires vouchers past their window", func() {
		t := s.T()
		due := s.publishedVoucher(nil)
		fresh := s.publishedVoucher(nil)

		_, err := s.DB.Exec(context.Background(),
			"UPDATE vouchers SET valid_until = $2 WHERE id = $1", due.ID, time.Now().Add(-time.Hour))
		require.NoError(t, err)

		var res resdto.BatchResponse
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/vouchers/expire-due", nil, s.admin)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &res)
		require.Equal(t, 1, res.ProcessedCount)
		require.Equal(t, 1, res.SuccessCount)
		require.Equal(t, due.ID.String(), res.Results[0].VoucherID)

		var view resdto.VoucherResponse
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(voucherURL, due.ID), nil, "")
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &view)
		require.Equal(t, "expired", view.State)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(voucherURL, fresh.ID), nil, "")
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &view)
		require.Equal(t, "published", view.State)
	})
}

func (s *VoucherE2ESuite) TestTranslations() {
	s.Run("localized read falls back per field", func() {
		t := s.T()
		v := s.publishedVoucher(nil)

		w := httptest.PerformRequest(t, s.Router, http.MethodPut, fmt.Sprintf(actionURL, v.ID, "translations/de"),
			reqdto.SetTranslationRequest{Title: "Zweiter Kaffee gratis"}, s.admin)
		require.Equal(t, http.StatusNoContent, w.Code)

		var view resdto.VoucherResponse
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(voucherURL, v.ID)+"?lang=de", nil, "")
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &view)
		require.Equal(t, "Zweiter Kaffee gratis", view.Title)
		require.Equal(t, "de", view.Lang)
	})
}

func (s *VoucherE2ESuite) TestBooks() {
	s.Run("assemble, print and render", func() {
		t := s.T()
		v := s.publishedVoucher(nil)

		var book resdto.BookResponse
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, booksURL, reqdto.CreateBookRequest{
			Title: "Spring 2026", Description: "Neighbourhood deals", Month: 4, Year: 2026, TotalPages: 8,
		}, s.admin)
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &book)

		var readiness resdto.ReadinessResponse
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, booksURL+"/"+book.ID.String()+"/readiness", nil, s.admin)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &readiness)
		require.False(t, readiness.Allowed)
		require.Equal(t, []string{"voucherCount"}, readiness.RequiredFields)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, booksURL+"/"+book.ID.String()+"/entries",
			reqdto.AddBookEntryRequest{VoucherID: v.ID, PageNumber: 2, Position: 1}, s.admin)
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, nil)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, booksURL+"/"+book.ID.String()+"/entries",
			reqdto.AddBookEntryRequest{VoucherID: v.ID, PageNumber: 3}, s.admin)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "duplicate_entry")

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, booksURL+"/"+book.ID.String()+"/transition",
			reqdto.TransitionRequest{Status: "ready_for_print"}, s.admin)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &book)
		require.Equal(t, "ready_for_print", book.Status)
		require.Equal(t, 1, book.VoucherCount)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, booksURL+"/"+book.ID.String(), nil, s.admin)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &book)
		require.Len(t, book.Entries, 1)
		require.Equal(t, "Kaffeehaus Ost", book.Entries[0].BusinessName)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, booksURL+"/"+book.ID.String()+"/pdf", nil, s.admin)
		require.Equal(t, http.StatusOK, w.Code)
		require.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
	})
}
