package entity

import "time"

type EntitlementKind string

const (
	EntitlementKindSubscription  EntitlementKind = "subscription"
	EntitlementKindUnlockPost    EntitlementKind = "unlock_post"
	EntitlementKindUnlockMessage EntitlementKind = "unlock_message"
)

// Entitlement records that a paid access right has been purchased. At most one
// entitlement exists per (account, target, kind), which is what makes unlock and
// subscribe idempotent. Only subscriptions are ever revoked.
type Entitlement struct {
	ID        string          `json:"id"`
	AccountID string          `json:"account_id"`
	TargetID  string          `json:"target_id"`
	Kind      EntitlementKind `json:"kind"`
	CreatedAt time.Time       `json:"created_at"`
}

// TransactionKind maps an entitlement kind to the transaction kind that
// documents its purchase.
func (k EntitlementKind) TransactionKind() TransactionKind {
	switch k {
	case EntitlementKindSubscription:
		return TransactionKindSubscription
	case EntitlementKindUnlockMessage:
		return TransactionKindUnlockMessage
	default:
		return TransactionKindUnlockPost
	}
}
