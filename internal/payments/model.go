package payments

import (
	"errors"
	"time"
)

var (
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrNotParticipant    = errors.New("not a participant in this match")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInvalidStatus     = errors.New("invalid payment status")
	ErrInvalidTransition = errors.New("invalid payment status transition")
)

// Status constants
const (
	StatusPending   = "pending"
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
	StatusRefunded  = "refunded"
)

// Payment is a flat record mirroring an external processor's charge. The
// processor itself is out of scope; callers report outcomes the way the
// mobile app mirrored webhook events into rows.
type Payment struct {
	ID          string    `json:"id"`
	MatchID     string    `json:"match_id"`
	PayerID     string    `json:"payer_id"`
	PayeeID     string    `json:"payee_id"`
	AmountCents int64     `json:"amount_cents"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	Reference   string    `json:"reference,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func canTransition(from, to string) bool {
	switch from {
	case StatusPending:
		return to == StatusSucceeded || to == StatusFailed
	case StatusSucceeded:
		return to == StatusRefunded
	}
	return false
}

func validStatus(s string) bool {
	switch s {
	case StatusPending, StatusSucceeded, StatusFailed, StatusRefunded:
		return true
	}
	return false
}
