package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/event-ticketing/internal/domain"
)

// TicketRepository encapsulates ticket persistence. ListExpirable and
// MarkInvalid together form the narrow surface the expiry sweep consumes.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	ListByOwner(ctx context.Context, ownerEmail string, limit, offset int) ([]domain.Ticket, error)
	UpdateSpectator(ctx context.Context, ticketID, name, email string) error
	ListExpirable(ctx context.Context) ([]domain.ExpirableTicket, error)
	MarkInvalid(ctx context.Context, ticketID string) error
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (event_id, owner_email, payment_id, spectator_name, spectator_email, invalid)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.EventID,
		ticket.OwnerEmail,
		ticket.PaymentID,
		ticket.SpectatorName,
		ticket.SpectatorEmail,
		ticket.Invalid,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	const query = `
        SELECT id, event_id, owner_email, payment_id, spectator_name, spectator_email, invalid, created_at, updated_at
        FROM tickets WHERE id=$1`
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.EventID,
		&ticket.OwnerEmail,
		&ticket.PaymentID,
		&ticket.SpectatorName,
		&ticket.SpectatorEmail,
		&ticket.Invalid,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) ListByOwner(ctx context.Context, ownerEmail string, limit, offset int) ([]domain.Ticket, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	const query = `
        SELECT id, event_id, owner_email, payment_id, spectator_name, spectator_email, invalid, created_at, updated_at
        FROM tickets WHERE owner_email=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, ownerEmail, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.EventID,
			&ticket.OwnerEmail,
			&ticket.PaymentID,
			&ticket.SpectatorName,
			&ticket.SpectatorEmail,
			&ticket.Invalid,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}

func (r *ticketRepository) UpdateSpectator(ctx context.Context, ticketID, name, email string) error {
	const query = `
        UPDATE tickets SET spectator_name=$1, spectator_email=$2, updated_at=NOW()
        WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query, name, email, ticketID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ListExpirable returns every still-valid ticket with its event start time.
// The sweep, not the query, decides what counts as past.
func (r *ticketRepository) ListExpirable(ctx context.Context) ([]domain.ExpirableTicket, error) {
	const query = `
        SELECT t.id, e.starts_at
        FROM tickets t
        JOIN events e ON e.id = t.event_id
        WHERE t.invalid = FALSE`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ExpirableTicket
	for rows.Next() {
		var item domain.ExpirableTicket
		if err := rows.Scan(&item.TicketID, &item.EventStartsAt); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

// MarkInvalid soft-invalidates a single ticket. The flag is monotonic:
// nothing in the schema or the code ever resets it to false.
func (r *ticketRepository) MarkInvalid(ctx context.Context, ticketID string) error {
	const query = `
        UPDATE tickets SET invalid=TRUE, updated_at=NOW()
        WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, ticketID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
