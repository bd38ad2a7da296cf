package blocking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

// PgxPool is the subset of pgxpool.Pool the repository needs; pgxmock
// satisfies it in tests.
type PgxPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresRepository stores blocked slots in the relational database.
type PostgresRepository struct {
	pool PgxPool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("blocking: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// NewPostgresRepositoryWithPool allows injecting mocks for tests.
func NewPostgresRepositoryWithPool(pool PgxPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a new block. A unique-violation on (date, slot) is surfaced
// as ErrAlreadyBlocked.
func (r *PostgresRepository) Create(ctx context.Context, date, slot, reason string) (*BlockedSlot, error) {
	id := uuid.New()
	query := `
		INSERT INTO blocked_slots (id, date, slot, reason)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.pool.QueryRow(ctx, query, id, date, slot, reason).Scan(&createdAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, ErrAlreadyBlocked
		}
		return nil, fmt.Errorf("blocking: insert failed: %w", err)
	}

	return &BlockedSlot{
		ID:        id.String(),
		Date:      date,
		Slot:      slot,
		Reason:    reason,
		CreatedAt: createdAt,
	}, nil
}

// CreateMissing blocks every listed slot that has no block yet, in a single
// statement so a partial day can never be committed. Returns rows inserted;
// already-blocked slots are skipped by the ON CONFLICT clause.
func (r *PostgresRepository) CreateMissing(ctx context.Context, date string, slotLabels []string, reason string) (int, error) {
	query := `
		INSERT INTO blocked_slots (id, date, slot, reason)
		SELECT gen_random_uuid(), $1, s, $2
		FROM unnest($3::text[]) AS s
		ON CONFLICT (date, slot) DO NOTHING
	`
	tag, err := r.pool.Exec(ctx, query, date, reason, slotLabels)
	if err != nil {
		return 0, fmt.Errorf("blocking: bulk insert failed: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// Delete removes a block by id. ErrBlockNotFound when no row matches.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM blocked_slots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("blocking: delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrBlockNotFound
	}
	return nil
}

// ListByDate fetches blocks for one calendar date ordered by slot.
func (r *PostgresRepository) ListByDate(ctx context.Context, date string) ([]*BlockedSlot, error) {
	query := `
		SELECT id, date, slot, reason, created_at
		FROM blocked_slots
		WHERE date = $1
		ORDER BY slot
	`
	rows, err := r.pool.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("blocking: select by date failed: %w", err)
	}
	defer rows.Close()
	return scanBlocks(rows)
}

// List fetches every block, newest date first.
func (r *PostgresRepository) List(ctx context.Context) ([]*BlockedSlot, error) {
	query := `
		SELECT id, date, slot, reason, created_at
		FROM blocked_slots
		ORDER BY date DESC, slot
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("blocking: select failed: %w", err)
	}
	defer rows.Close()
	return scanBlocks(rows)
}

func scanBlocks(rows pgx.Rows) ([]*BlockedSlot, error) {
	var out []*BlockedSlot
	for rows.Next() {
		var block BlockedSlot
		var reason *string
		if err := rows.Scan(&block.ID, &block.Date, &block.Slot, &reason, &block.CreatedAt); err != nil {
			return nil, fmt.Errorf("blocking: scan failed: %w", err)
		}
		if reason != nil {
			block.Reason = *reason
		}
		out = append(out, &block)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("blocking: rows failed: %w", err)
	}
	return out, nil
}
