package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/event-ticketing/internal/domain"
	"github.com/spec-kit/event-ticketing/internal/events"
	"github.com/spec-kit/event-ticketing/internal/repository"
	"github.com/spec-kit/event-ticketing/pkg/util"
)

// TicketService coordinates purchase and spectator-detail workflows. Ticket
// invalidation is not handled here; that belongs to the expiry sweep.
type TicketService struct {
	tickets    repository.TicketRepository
	eventsRepo repository.EventRepository
	payments   repository.PaymentRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles repositories for the ticket service.
type TicketDependencies struct {
	TicketRepo  repository.TicketRepository
	EventRepo   repository.EventRepository
	PaymentRepo repository.PaymentRepository
	Dispatcher  events.Dispatcher
}

// NewTicketService builds the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		eventsRepo: deps.EventRepo,
		payments:   deps.PaymentRepo,
		dispatcher: deps.Dispatcher,
	}
}

// PurchaseInput describes a ticket purchase.
type PurchaseInput struct {
	EventID        string
	SpectatorName  string
	SpectatorEmail string
}

// Purchase settles a payment and creates the ticket it pays for.
func (s *TicketService) Purchase(ctx context.Context, buyerEmail string, input PurchaseInput) (*domain.Ticket, error) {
	if strings.TrimSpace(input.SpectatorName) == "" {
		return nil, util.NewValidationError("spectator name required", nil)
	}

	event, err := s.eventsRepo.GetByID(ctx, input.EventID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("event", map[string]any{"event_id": input.EventID})
		}
		return nil, util.NewPersistenceFailure(err)
	}
	if !event.StartsAt.After(time.Now().UTC()) {
		return nil, util.NewConflict("event already started", nil)
	}

	payment := &domain.Payment{
		PayerEmail:  buyerEmail,
		AmountCents: event.PriceCents,
		Currency:    "EUR",
		Status:      domain.PaymentStatusCompleted,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, util.NewPersistenceFailure(err)
	}

	ticket := &domain.Ticket{
		EventID:        event.ID,
		OwnerEmail:     buyerEmail,
		PaymentID:      &payment.ID,
		SpectatorName:  input.SpectatorName,
		SpectatorEmail: input.SpectatorEmail,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, util.NewPersistenceFailure(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventTicketPurchased,
			Timestamp: time.Now().UTC(),
			Payload: events.TicketPurchasedPayload{
				TicketID:   ticket.ID,
				EventID:    event.ID,
				OwnerEmail: buyerEmail,
				PaymentID:  payment.ID,
			},
		})
	}

	return ticket, nil
}

// ListOwned returns the caller's tickets.
func (s *TicketService) ListOwned(ctx context.Context, ownerEmail string, limit, offset int) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListByOwner(ctx, ownerEmail, limit, offset)
	if err != nil {
		return nil, util.NewPersistenceFailure(err)
	}
	return tickets, nil
}

// UpdateSpectator edits spectator details on an owned ticket. This and the
// expiry sweep are the only mutations a ticket ever sees.
func (s *TicketService) UpdateSpectator(ctx context.Context, ownerEmail, ticketID, name, email string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, util.NewPersistenceFailure(err)
	}
	if ticket.OwnerEmail != ownerEmail {
		return nil, util.NewForbidden("not the ticket owner")
	}
	if strings.TrimSpace(name) == "" {
		return nil, util.NewValidationError("spectator name required", nil)
	}

	if err := s.tickets.UpdateSpectator(ctx, ticketID, name, email); err != nil {
		return nil, util.NewPersistenceFailure(err)
	}

	ticket.SpectatorName = name
	ticket.SpectatorEmail = email
	return ticket, nil
}
