package dto

import (
	"time"

	"github.com/spec-kit/event-ticketing/internal/domain"
)

// PurchaseRequest is the payload for buying a ticket.
type PurchaseRequest struct {
	EventID        string `json:"eventId"`
	SpectatorName  string `json:"spectatorName"`
	SpectatorEmail string `json:"spectatorEmail"`
}

// SpectatorUpdateRequest edits spectator details on a ticket.
type SpectatorUpdateRequest struct {
	SpectatorName  string `json:"spectatorName"`
	SpectatorEmail string `json:"spectatorEmail"`
}

// TicketResponse is the API shape of a ticket.
type TicketResponse struct {
	ID             string    `json:"id"`
	EventID        string    `json:"eventId"`
	PaymentID      *string   `json:"paymentId,omitempty"`
	SpectatorName  string    `json:"spectatorName"`
	SpectatorEmail string    `json:"spectatorEmail"`
	Invalid        bool      `json:"invalid"`
	CreatedAt      time.Time `json:"createdAt"`
}

// NewTicketResponse maps a domain ticket.
func NewTicketResponse(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:             ticket.ID,
		EventID:        ticket.EventID,
		PaymentID:      ticket.PaymentID,
		SpectatorName:  ticket.SpectatorName,
		SpectatorEmail: ticket.SpectatorEmail,
		Invalid:        ticket.Invalid,
		CreatedAt:      ticket.CreatedAt,
	}
}

// NewTicketResponses maps a slice of tickets.
func NewTicketResponses(tickets []domain.Ticket) []TicketResponse {
	out := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		out = append(out, NewTicketResponse(&tickets[i]))
	}
	return out
}
