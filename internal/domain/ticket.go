package domain

import "time"

// Ticket grants one spectator entry to one event. A ticket is created when a
// purchase completes and is only ever mutated by spectator-detail edits or by
// the expiry sweep flipping the invalid flag. The sweep never deletes rows.
type Ticket struct {
	ID             string
	EventID        string
	OwnerEmail     string
	PaymentID      *string
	SpectatorName  string
	SpectatorEmail string
	Invalid        bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ExpirableTicket is the narrow projection the expiry sweep works on: a
// ticket identifier paired with the start time of its owning event.
type ExpirableTicket struct {
	TicketID      string
	EventStartsAt time.Time
}
