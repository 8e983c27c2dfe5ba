package domain

import "time"

// PaymentStatus enumerates settlement states.
type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
)

// Payment records the settled purchase a ticket optionally points at.
type Payment struct {
	ID          string
	PayerEmail  string
	AmountCents int64
	Currency    string
	Status      PaymentStatus
	CreatedAt   time.Time
}
