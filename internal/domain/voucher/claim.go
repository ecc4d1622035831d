package voucher

import (
	"time"

	"github.com/google/uuid"
)

type ClaimStatus string

const (
	ClaimStatusClaimed  ClaimStatus = "claimed"
	ClaimStatusRedeemed ClaimStatus = "redeemed"
	ClaimStatusExpired  ClaimStatus = "expired"
)

// Claim is a customer's wallet entry for a voucher. It is never deleted and
// moves from claimed to redeemed at most once.
type Claim struct {
	ID             uuid.UUID
	CustomerID     uuid.UUID
	VoucherID      uuid.UUID
	Status         ClaimStatus
	ClaimedAt      time.Time
	RedeemedAt     *time.Time
	RedemptionCode *string
}

func NewClaim(id, customerID, voucherID uuid.UUID, now time.Time) Claim {
	return Claim{
		ID:         id,
		CustomerID: customerID,
		VoucherID:  voucherID,
		Status:     ClaimStatusClaimed,
		ClaimedAt:  now,
	}
}

func (c Claim) IsRedeemed() bool {
	return c.Status == ClaimStatusRedeemed
}
