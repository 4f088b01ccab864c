package domain

import "time"

// Donation is an append-only contribution record. UserID is nil for
// anonymous donations. Rows are never mutated or deleted by this system.
type Donation struct {
	ID            string    `json:"id"`
	ProjectID     string    `json:"project_id"`
	UserID        *string   `json:"user_id"`
	Amount        int64     `json:"amount"`
	PaymentMethod string    `json:"payment_method"`
	CreatedAt     time.Time `json:"created_at"`
}
