package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxPool is the subset of pgxpool.Pool the repository needs; pgxmock
// satisfies it in tests.
type PgxPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresRepository stores booking attempts in the relational database, so
// an attempt survives process restarts between payment phases.
type PostgresRepository struct {
	pool PgxPool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("booking: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// NewPostgresRepositoryWithPool allows injecting mocks for tests.
func NewPostgresRepositoryWithPool(pool PgxPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a new attempt row.
func (r *PostgresRepository) Create(ctx context.Context, attempt *Attempt) error {
	query := `
		INSERT INTO booking_attempts
			(id, state, name, email, phone, date, slot, notes, order_id, amount, currency, failure)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at
	`
	var orderID *string
	if attempt.OrderID != "" {
		orderID = &attempt.OrderID
	}
	if err := r.pool.QueryRow(ctx, query,
		attempt.ID,
		string(attempt.State),
		attempt.Name,
		attempt.Email,
		attempt.Phone,
		attempt.Date,
		attempt.Slot,
		attempt.Notes,
		orderID,
		attempt.Amount,
		attempt.Currency,
		attempt.Failure,
	).Scan(&attempt.CreatedAt, &attempt.UpdatedAt); err != nil {
		return fmt.Errorf("booking: insert attempt failed: %w", err)
	}
	return nil
}

// GetByOrderID loads the attempt correlated with a provider order.
func (r *PostgresRepository) GetByOrderID(ctx context.Context, orderID string) (*Attempt, error) {
	query := `
		SELECT id, state, name, email, phone, date, slot, notes,
		       order_id, amount, currency, appointment_id, failure,
		       created_at, updated_at
		FROM booking_attempts
		WHERE order_id = $1
	`
	var (
		attempt       Attempt
		state         string
		notes         *string
		storedOrderID *string
		appointmentID *string
		failure       *string
	)
	if err := r.pool.QueryRow(ctx, query, orderID).Scan(
		&attempt.ID,
		&state,
		&attempt.Name,
		&attempt.Email,
		&attempt.Phone,
		&attempt.Date,
		&attempt.Slot,
		&notes,
		&storedOrderID,
		&attempt.Amount,
		&attempt.Currency,
		&appointmentID,
		&failure,
		&attempt.CreatedAt,
		&attempt.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("booking: select attempt failed: %w", err)
	}
	attempt.State = State(state)
	if notes != nil {
		attempt.Notes = *notes
	}
	if storedOrderID != nil {
		attempt.OrderID = *storedOrderID
	}
	if appointmentID != nil {
		attempt.AppointmentID = *appointmentID
	}
	if failure != nil {
		attempt.Failure = *failure
	}
	return &attempt, nil
}

// UpdateState persists a state transition marker.
func (r *PostgresRepository) UpdateState(ctx context.Context, id string, state State, failure string) error {
	query := `
		UPDATE booking_attempts
		SET state = $2, failure = $3, updated_at = $4
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, id, string(state), failure, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("booking: update state failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAttemptNotFound
	}
	return nil
}

// MarkConfirmed records the committed appointment on the attempt.
func (r *PostgresRepository) MarkConfirmed(ctx context.Context, id string, appointmentID string) error {
	query := `
		UPDATE booking_attempts
		SET state = $2, appointment_id = $3, failure = '', updated_at = $4
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, id, string(StateConfirmed), appointmentID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("booking: mark confirmed failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAttemptNotFound
	}
	return nil
}
