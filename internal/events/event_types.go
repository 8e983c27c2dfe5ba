package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered    EventType = "user_registered"
	EventTicketPurchased   EventType = "ticket_purchased"
	EventTicketInvalidated EventType = "ticket_invalidated"
)

// Event represents a domain event emitted by services and the expiry sweep.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// TicketPurchasedPayload payload.
type TicketPurchasedPayload struct {
	TicketID   string `json:"ticket_id"`
	EventID    string `json:"event_id"`
	OwnerEmail string `json:"owner_email"`
	PaymentID  string `json:"payment_id,omitempty"`
}

// TicketInvalidatedPayload payload.
type TicketInvalidatedPayload struct {
	TicketID      string    `json:"ticket_id"`
	EventStartsAt time.Time `json:"event_starts_at"`
}
