package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/event-ticketing/internal/domain"
	"github.com/spec-kit/event-ticketing/internal/repository"
	"github.com/spec-kit/event-ticketing/pkg/util"
)

// EventService exposes event catalog operations.
type EventService struct {
	events repository.EventRepository
}

// NewEventService builds the service.
func NewEventService(eventRepo repository.EventRepository) *EventService {
	return &EventService{events: eventRepo}
}

// EventCreateInput describes an event to publish.
type EventCreateInput struct {
	Name        string
	Venue       string
	Description string
	StartsAt    time.Time
	Capacity    int
	PriceCents  int64
}

// Create publishes a new event.
func (s *EventService) Create(ctx context.Context, input EventCreateInput) (*domain.Event, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, util.NewValidationError("event name required", nil)
	}
	if input.StartsAt.IsZero() {
		return nil, util.NewValidationError("event start time required", nil)
	}

	event := &domain.Event{
		Name:        input.Name,
		Venue:       input.Venue,
		Description: input.Description,
		StartsAt:    input.StartsAt.UTC(),
		Capacity:    input.Capacity,
		PriceCents:  input.PriceCents,
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, util.NewPersistenceFailure(err)
	}
	return event, nil
}

// Get returns a single event.
func (s *EventService) Get(ctx context.Context, id string) (*domain.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("event", map[string]any{"event_id": id})
		}
		return nil, util.NewPersistenceFailure(err)
	}
	return event, nil
}

// List returns upcoming and past events ordered by start time.
func (s *EventService) List(ctx context.Context, limit, offset int) ([]domain.Event, error) {
	result, err := s.events.List(ctx, limit, offset)
	if err != nil {
		return nil, util.NewPersistenceFailure(err)
	}
	return result, nil
}
