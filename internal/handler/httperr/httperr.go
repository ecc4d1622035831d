package httperr

import (
	"net/http"

	"voucher-engine/internal/domain/auth"
	"voucher-engine/internal/domain/voucher"
	"voucher-engine/internal/domain/voucherbook"
	"voucher-engine/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// reasons is checked in order; the first match names the machine code.
var reasons = []struct {
	err  error
	code string
}{
	{voucher.ErrVoucherNotFound, "voucher_not_found"},
	{voucher.ErrCodeNotFound, "code_not_found"},
	{voucher.ErrClaimNotFound, "claim_not_found"},
	{voucher.ErrBusinessUnknown, "business_not_found"},
	{voucher.ErrInvalidTransition, "invalid_transition"},
	{voucher.ErrPublishWindow, "publish_window"},
	{voucher.ErrNotPublished, "not_published"},
	{voucher.ErrNotYetValid, "not_yet_valid"},
	{voucher.ErrExpired, "expired"},
	{voucher.ErrAlreadyClaimed, "already_claimed"},
	{voucher.ErrNotClaimed, "not_claimed"},
	{voucher.ErrAlreadyRedeemed, "already_redeemed"},
	{voucher.ErrRedemptionLimitReached, "redemption_limit_reached"},
	{voucher.ErrPerUserLimitReached, "per_user_limit_reached"},
	{voucher.ErrAlreadySuspended, "cannot_suspend"},
	{voucher.ErrBusinessMismatch, "business_mismatch"},
	{voucher.ErrTokenRejected, "token_rejected"},
	{voucher.ErrInvalidCode, "invalid_code"},
	{voucherbook.ErrBookNotFound, "book_not_found"},
	{voucherbook.ErrInvalidTransition, "invalid_book_transition"},
	{voucherbook.ErrNotReady, "book_not_ready"},
	{voucherbook.ErrNotEditable, "book_not_editable"},
	{voucherbook.ErrDuplicateEntry, "duplicate_entry"},
	{auth.ErrInsufficientRole, "forbidden"},
}

var categories = []struct {
	err    error
	status int
	code   string
}{
	{errs.ErrValidation, http.StatusBadRequest, "validation_error"},
	{errs.ErrResourceNotFound, http.StatusNotFound, "not_found"},
	{errs.ErrBusinessRuleViolation, http.StatusConflict, "business_rule_violation"},
	{errs.ErrUnauthorized, http.StatusForbidden, "unauthorized"},
	{errs.ErrServiceUnavailable, http.StatusServiceUnavailable, "service_unavailable"},
}

// Classify maps an error to its HTTP status and machine code. Uncategorized
// errors are internal.
func Classify(err error) (int, string) {
	status, code := http.StatusInternalServerError, "internal_error"
	for _, c := range categories {
		if errs.Is(err, c.err) {
			status, code = c.status, c.code
			break
		}
	}
	for _, r := range reasons {
		if errs.Is(err, r.err) {
			code = r.code
			break
		}
	}
	return status, code
}

// Abort responds with the classified status. Internal and unavailable
// errors hide their message.
func Abort(c *gin.Context, err error) {
	status, code := Classify(err)
	msg := err.Error()
	switch status {
	case http.StatusInternalServerError:
		msg = "Internal server error"
	case http.StatusServiceUnavailable:
		msg = "Service temporarily unavailable"
	}
	abort(c, status, err, code, msg, nil)
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}
	_, code := Classify(err)
	if status == http.StatusBadRequest && code == "internal_error" {
		code = "bad_request"
	}
	abort(c, status, err, code, msg, detail)
}

func abort(c *gin.Context, status int, err error, code, msg string, detail any) {
	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Error.Code = code
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
