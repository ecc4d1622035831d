package response

import (
	"strconv"
	"time"

	"voucher-engine/internal/domain/voucher"
	"voucher-engine/internal/pkg/token"
	"voucher-engine/internal/usecase/commands"
	"voucher-engine/internal/usecase/queries"
	"voucher-engine/internal/usecase/readmodel"

	"github.com/google/uuid"
)

// VoucherResponse is the cached read model; its json shape is the API shape.
type VoucherResponse = readmodel.VoucherRM

type ClaimResponse struct {
	ClaimID   string          `json:"claim_id"`
	ClaimedAt time.Time       `json:"claimed_at"`
	Voucher   VoucherResponse `json:"voucher"`
}

func FromClaimResult(r *commands.ClaimResult) *ClaimResponse {
	return &ClaimResponse{
		ClaimID:   r.ClaimID.String(),
		ClaimedAt: r.ClaimedAt,
		Voucher:   r.Voucher,
	}
}

type RedeemResponse struct {
	ClaimID    string          `json:"claim_id"`
	RedeemedAt time.Time       `json:"redeemed_at"`
	Voucher    VoucherResponse `json:"voucher"`
}

func FromRedeemResult(r *commands.RedeemResult) *RedeemResponse {
	return &RedeemResponse{
		ClaimID:    r.ClaimID.String(),
		RedeemedAt: r.RedeemedAt,
		Voucher:    r.Voucher,
	}
}

type ResolvedCodeResponse struct {
	Type    string `json:"type"`
	BatchID string `json:"batch_id,omitempty"`
}

// ScanResponse carries the scan id as a string; snowflake ids overflow
// JavaScript numbers.
type ScanResponse struct {
	ScanID         string                `json:"scan_id"`
	Voucher        VoucherResponse       `json:"voucher"`
	AlreadyClaimed bool                  `json:"already_claimed"`
	CanClaim       bool                  `json:"can_claim"`
	Code           *ResolvedCodeResponse `json:"code,omitempty"`
}

func FromScanResult(r *commands.ScanResult) *ScanResponse {
	resp := &ScanResponse{
		ScanID:         formatScanID(r.ScanID),
		Voucher:        r.Voucher,
		AlreadyClaimed: r.AlreadyClaimed,
		CanClaim:       r.CanClaim,
	}
	if r.Code != nil {
		resp.Code = &ResolvedCodeResponse{Type: string(r.Code.Type), BatchID: r.Code.BatchID}
	}
	return resp
}

type ValidationResponse struct {
	IsValid bool             `json:"is_valid"`
	Reason  string           `json:"reason,omitempty"`
	Voucher *VoucherResponse `json:"voucher,omitempty"`
}

func FromValidationResult(r *queries.ValidationResult) *ValidationResponse {
	return &ValidationResponse{IsValid: r.IsValid, Reason: r.Reason, Voucher: r.Voucher}
}

type TokenResponse struct {
	VoucherID string    `json:"voucher_id"`
	QRPayload string    `json:"qr_payload"`
	ShortCode string    `json:"short_code"`
	BatchID   string    `json:"batch_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

func FromTokenResult(r *token.Result) *TokenResponse {
	return &TokenResponse{
		VoucherID: r.VoucherID.String(),
		QRPayload: r.QRPayload,
		ShortCode: r.ShortCode,
		BatchID:   r.BatchID,
		ExpiresAt: r.ExpiresAt,
	}
}

type BatchTokensResponse struct {
	BatchID string                    `json:"batch_id"`
	Tokens  map[string]*TokenResponse `json:"tokens"`
}

func FromBatchTokens(batchID string, results map[uuid.UUID]token.Result) *BatchTokensResponse {
	out := &BatchTokensResponse{BatchID: batchID, Tokens: make(map[string]*TokenResponse, len(results))}
	for id, r := range results {
		out.Tokens[id.String()] = FromTokenResult(&r)
	}
	return out
}

type VerificationResponse struct {
	Valid     bool   `json:"valid"`
	VoucherID string `json:"voucher_id,omitempty"`
	BatchID   string `json:"batch_id,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

func FromVerification(v token.Verification) *VerificationResponse {
	resp := &VerificationResponse{Valid: v.Valid, BatchID: v.BatchID, Reason: v.Reason}
	if v.VoucherID != uuid.Nil {
		resp.VoucherID = v.VoucherID.String()
	}
	return resp
}

type BatchItemResponse struct {
	VoucherID string              `json:"voucher_id"`
	Success   bool                `json:"success"`
	Error     string              `json:"error,omitempty"`
	Result    *ValidationResponse `json:"result,omitempty"`
}

type BatchResponse struct {
	ProcessedCount int                  `json:"processed_count"`
	SuccessCount   int                  `json:"success_count"`
	FailedCount    int                  `json:"failed_count"`
	Results        []*BatchItemResponse `json:"results"`
}

func FromBatchResult(r *commands.BatchResult) *BatchResponse {
	out := &BatchResponse{
		ProcessedCount: r.ProcessedCount,
		SuccessCount:   r.SuccessCount,
		FailedCount:    r.FailedCount,
		Results:        make([]*BatchItemResponse, len(r.Results)),
	}
	for i, item := range r.Results {
		resp := &BatchItemResponse{
			VoucherID: item.VoucherID.String(),
			Success:   item.Success,
			Error:     item.Error,
		}
		if item.Validation != nil {
			resp.Result = FromValidationResult(item.Validation)
		}
		out.Results[i] = resp
	}
	return out
}

type CodeResponse struct {
	ID        string    `json:"id"`
	VoucherID string    `json:"voucher_id"`
	Type      string    `json:"type"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
}

func FromCode(c *voucher.Code) *CodeResponse {
	return &CodeResponse{
		ID:        c.ID.String(),
		VoucherID: c.VoucherID.String(),
		Type:      string(c.Type),
		Code:      c.Code,
		CreatedAt: c.CreatedAt,
	}
}

func formatScanID(id int64) string {
	return strconv.FormatInt(id, 10)
}
