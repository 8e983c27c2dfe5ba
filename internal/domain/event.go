package domain

import "time"

// Event is a scheduled happening tickets are sold for. The expiry sweep
// reads its start time but never mutates it.
type Event struct {
	ID          string
	Name        string
	Venue       string
	Description string
	StartsAt    time.Time
	Capacity    int
	PriceCents  int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
