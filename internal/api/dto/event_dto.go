package dto

import (
	"time"

	"github.com/spec-kit/event-ticketing/internal/domain"
)

// EventCreateRequest is the payload for publishing an event.
type EventCreateRequest struct {
	Name        string    `json:"name"`
	Venue       string    `json:"venue"`
	Description string    `json:"description"`
	StartsAt    time.Time `json:"startsAt"`
	Capacity    int       `json:"capacity"`
	PriceCents  int64     `json:"priceCents"`
}

// EventResponse is the API shape of an event.
type EventResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Venue       string    `json:"venue"`
	Description string    `json:"description"`
	StartsAt    time.Time `json:"startsAt"`
	Capacity    int       `json:"capacity"`
	PriceCents  int64     `json:"priceCents"`
}

// NewEventResponse maps a domain event.
func NewEventResponse(event *domain.Event) EventResponse {
	return EventResponse{
		ID:          event.ID,
		Name:        event.Name,
		Venue:       event.Venue,
		Description: event.Description,
		StartsAt:    event.StartsAt,
		Capacity:    event.Capacity,
		PriceCents:  event.PriceCents,
	}
}
