package entity

import "time"

// Account holds a user's spendable balance in minor currency units (centavos).
// Balance is mutated only by the ledger use case.
type Account struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Balance   int64     `json:"balance"`
	Disabled  bool      `json:"disabled"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
