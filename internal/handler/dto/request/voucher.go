package request

import (
	"time"

	"voucher-engine/internal/domain/voucher"
	"voucher-engine/internal/usecase/commands"
	"voucher-engine/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateVoucherRequest struct {
	BusinessID            uuid.UUID       `json:"business_id" binding:"required"`
	CategoryID            *uuid.UUID      `json:"category_id"`
	Title                 string          `json:"title" binding:"required,max=200"`
	Description           string          `json:"description" binding:"max=2000"`
	DiscountKind          string          `json:"discount_kind" binding:"required,oneof=percentage fixed"`
	DiscountValue         decimal.Decimal `json:"discount_value"`
	Currency              string          `json:"currency" binding:"omitempty,len=3"`
	ValidFrom             *time.Time      `json:"valid_from"`
	ValidUntil            *time.Time      `json:"valid_until"`
	MaxRedemptions        *int            `json:"max_redemptions" binding:"omitempty,min=1"`
	MaxRedemptionsPerUser int             `json:"max_redemptions_per_user" binding:"omitempty,min=1"`
}

func (r *CreateVoucherRequest) ToInput() commands.CreateVoucherInput {
	return commands.CreateVoucherInput{
		BusinessID:            r.BusinessID,
		CategoryID:            r.CategoryID,
		Title:                 r.Title,
		Description:           r.Description,
		DiscountKind:          r.DiscountKind,
		DiscountValue:         r.DiscountValue,
		Currency:              r.Currency,
		ValidFrom:             r.ValidFrom,
		ValidUntil:            r.ValidUntil,
		MaxRedemptions:        r.MaxRedemptions,
		MaxRedemptionsPerUser: r.MaxRedemptionsPerUser,
	}
}

type TransitionRequest struct {
	Status string `json:"status" binding:"required"`
}

type SetTranslationRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"max=2000"`
}

// RedeemRequest names the customer when staff redeem on their behalf.
// Customers redeeming their own claim leave UserID empty.
type RedeemRequest struct {
	UserID         *uuid.UUID `json:"user_id"`
	RedemptionCode string     `json:"redemption_code" binding:"max=64"`
}

type ScanRequest struct {
	Source   string               `json:"source" binding:"required,oneof=camera gallery link share"`
	Metadata voucher.ScanMetadata `json:"metadata"`
}

type ScanCodeRequest struct {
	Code     string               `json:"code" binding:"required,max=2048"`
	Source   string               `json:"source" binding:"required,oneof=camera gallery link share"`
	Metadata voucher.ScanMetadata `json:"metadata"`
}

type ValidateRequest struct {
	CheckState           bool       `json:"check_state"`
	CheckExpiry          bool       `json:"check_expiry"`
	CheckRedemptionLimit bool       `json:"check_redemption_limit"`
	UserID               *uuid.UUID `json:"user_id"`
}

func (r *ValidateRequest) ToOptions() queries.ValidateOptions {
	return queries.ValidateOptions{
		CheckState:           r.CheckState,
		CheckExpiry:          r.CheckExpiry,
		CheckRedemptionLimit: r.CheckRedemptionLimit,
		UserID:               r.UserID,
	}
}

type IssueTokensRequest struct {
	BatchID    string `json:"batch_id" binding:"max=64"`
	TTLSeconds int    `json:"ttl_seconds" binding:"omitempty,min=60"`
}

func (r *IssueTokensRequest) TTL() time.Duration {
	return time.Duration(r.TTLSeconds) * time.Second
}

type IssueBatchTokensRequest struct {
	VoucherIDs []uuid.UUID `json:"voucher_ids" binding:"required,min=1,max=1000"`
	BatchID    string      `json:"batch_id" binding:"max=64"`
}

type VerifyTokenRequest struct {
	Token string `json:"token" binding:"required,max=2048"`
}

type BatchProcessRequest struct {
	VoucherIDs           []uuid.UUID `json:"voucher_ids" binding:"required,min=1,max=1000"`
	Operation            string      `json:"operation" binding:"required,oneof=expire activate validate"`
	CheckState           bool        `json:"check_state"`
	CheckExpiry          bool        `json:"check_expiry"`
	CheckRedemptionLimit bool        `json:"check_redemption_limit"`
}

func (r *BatchProcessRequest) ToOptions() queries.ValidateOptions {
	return queries.ValidateOptions{
		CheckState:           r.CheckState,
		CheckExpiry:          r.CheckExpiry,
		CheckRedemptionLimit: r.CheckRedemptionLimit,
	}
}

type ExpireDueRequest struct {
	Limit int `json:"limit" binding:"omitempty,min=1,max=10000"`
}
