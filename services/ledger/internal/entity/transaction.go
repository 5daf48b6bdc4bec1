package entity

import "time"

type TransactionKind string

const (
	TransactionKindDeposit            TransactionKind = "deposit"
	TransactionKindWithdrawal         TransactionKind = "withdrawal"
	TransactionKindWithdrawalReversal TransactionKind = "withdrawal_reversal"
	TransactionKindSubscription       TransactionKind = "subscription"
	TransactionKindTip                TransactionKind = "tip"
	TransactionKindUnlockPost         TransactionKind = "unlock_post"
	TransactionKindUnlockMessage      TransactionKind = "unlock_message"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// Transaction is the immutable record of one balance mutation. Amount is signed:
// positive credits the account, negative debits it. Sequence is assigned by the
// store in creation order. Once the status is completed or failed it is terminal;
// the only legal transitions are pending -> completed and pending -> failed.
type Transaction struct {
	ID          string            `json:"id"`
	Sequence    int64             `json:"sequence"`
	AccountID   string            `json:"account_id"`
	Kind        TransactionKind   `json:"kind"`
	Amount      int64             `json:"amount"`
	Status      TransactionStatus `json:"status"`
	Description string            `json:"description"`
	TargetID    string            `json:"target_id,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}
