package voucher

import "voucher-engine/internal/pkg/errs"

var (
	ErrVoucherNotFound = errs.Define(errs.ErrResourceNotFound, "voucher not found")
	ErrCodeNotFound    = errs.Define(errs.ErrResourceNotFound, "voucher code not found")
	ErrClaimNotFound   = errs.Define(errs.ErrResourceNotFound, "claim not found")
	ErrBusinessUnknown = errs.Define(errs.ErrResourceNotFound, "business not found")

	ErrInvalidTransition      = errs.Define(errs.ErrBusinessRuleViolation, "invalid voucher state transition")
	ErrPublishWindow          = errs.Define(errs.ErrBusinessRuleViolation, "validity window does not allow publishing")
	ErrNotPublished           = errs.Define(errs.ErrBusinessRuleViolation, "voucher is not published")
	ErrNotYetValid            = errs.Define(errs.ErrBusinessRuleViolation, "voucher is not yet valid")
	ErrExpired                = errs.Define(errs.ErrBusinessRuleViolation, "voucher has expired")
	ErrAlreadyClaimed         = errs.Define(errs.ErrBusinessRuleViolation, "voucher already claimed")
	ErrNotClaimed             = errs.Define(errs.ErrBusinessRuleViolation, "voucher not claimed")
	ErrAlreadyRedeemed        = errs.Define(errs.ErrBusinessRuleViolation, "voucher already redeemed")
	ErrRedemptionLimitReached = errs.Define(errs.ErrBusinessRuleViolation, "maximum redemptions reached")
	ErrPerUserLimitReached    = errs.Define(errs.ErrBusinessRuleViolation, "maximum redemptions per user reached")
	ErrAlreadySuspended       = errs.Define(errs.ErrBusinessRuleViolation, "voucher cannot be suspended")

	ErrBusinessMismatch = errs.Define(errs.ErrUnauthorized, "business does not own this voucher")
	ErrTokenRejected    = errs.Define(errs.ErrUnauthorized, "voucher token rejected")

	ErrInvalidDiscount        = errs.Define(errs.ErrValidation, "invalid discount")
	ErrInvalidValidityWindow  = errs.Define(errs.ErrValidation, "validFrom must not be after validUntil")
	ErrInvalidRedemptionLimit = errs.Define(errs.ErrValidation, "redemption limits must be at least 1")
	ErrInvalidStatus          = errs.Define(errs.ErrValidation, "unknown voucher status")
	ErrInvalidScanSource      = errs.Define(errs.ErrValidation, "unknown scan source")
	ErrInvalidScanType        = errs.Define(errs.ErrValidation, "unknown scan type")
	ErrInvalidCodeType        = errs.Define(errs.ErrValidation, "unknown code type")
	ErrInvalidTitle           = errs.Define(errs.ErrValidation, "voucher title is required")
	ErrInvalidCurrency        = errs.Define(errs.ErrValidation, "currency must be a 3 letter ISO code")
	ErrInvalidLang            = errs.Define(errs.ErrValidation, "language tag is required")
	ErrInvalidCode            = errs.Define(errs.ErrValidation, "code is not a recognized voucher code")
)
