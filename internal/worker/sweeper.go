package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/event-ticketing/internal/clock"
	"github.com/spec-kit/event-ticketing/internal/domain"
	"github.com/spec-kit/event-ticketing/internal/events"
	"github.com/spec-kit/event-ticketing/internal/observability"
)

// TicketSource is the narrow persistence surface the sweep consumes. It
// keeps the sweep decoupled from the full ticket repository.
type TicketSource interface {
	ListExpirable(ctx context.Context) ([]domain.ExpirableTicket, error)
	MarkInvalid(ctx context.Context, ticketID string) error
}

// SweepStats summarizes one sweep run.
type SweepStats struct {
	Scanned     int
	Invalidated int
	Failed      int
}

// Sweeper marks tickets of past events as invalid. Each flag flip is its own
// unit of work: a persistence failure on one ticket is logged and skipped,
// never retried within the run and never allowed to abort the rest. Re-running
// later completes the remainder, so a crash mid-sweep leaves convergent state.
type Sweeper struct {
	source     TicketSource
	dispatcher events.Dispatcher
	clock      clock.Clock
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewSweeper builds a sweeper.
func NewSweeper(source TicketSource, dispatcher events.Dispatcher, clk clock.Clock, metrics *observability.Metrics, logger *zap.Logger) *Sweeper {
	if clk == nil {
		clk = clock.NewSystem()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sweeper{
		source:     source,
		dispatcher: dispatcher,
		clock:      clk,
		metrics:    metrics,
		logger:     logger,
	}
}

// Run executes one full sweep over the current snapshot. A ticket expires
// when its event start time is strictly before now. The invalid flag is
// monotonic: already-invalid tickets are excluded from the snapshot and
// nothing here ever resets the flag.
func (s *Sweeper) Run(ctx context.Context) (SweepStats, error) {
	now := s.clock.Now()

	tickets, err := s.source.ListExpirable(ctx)
	if err != nil {
		return SweepStats{}, fmt.Errorf("load expirable tickets: %w", err)
	}

	stats := SweepStats{Scanned: len(tickets)}
	for _, ticket := range tickets {
		if !ticket.EventStartsAt.Before(now) {
			continue
		}

		if err := s.source.MarkInvalid(ctx, ticket.TicketID); err != nil {
			stats.Failed++
			s.logger.Warn("ticket not invalidated, skipping",
				zap.String("ticket_id", ticket.TicketID),
				zap.Error(err))
			continue
		}
		stats.Invalidated++

		if s.dispatcher != nil {
			_ = s.dispatcher.Publish(ctx, events.Event{
				ID:        uuid.NewString(),
				Type:      events.EventTicketInvalidated,
				Timestamp: time.Now().UTC(),
				Payload: events.TicketInvalidatedPayload{
					TicketID:      ticket.TicketID,
					EventStartsAt: ticket.EventStartsAt,
				},
			})
		}
	}

	s.metrics.RecordSweep(stats.Invalidated, stats.Failed)
	s.logger.Info("expiry sweep finished",
		zap.Int("scanned", stats.Scanned),
		zap.Int("invalidated", stats.Invalidated),
		zap.Int("failed", stats.Failed))

	return stats, nil
}
