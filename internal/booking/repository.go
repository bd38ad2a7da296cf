package booking

import (
	"context"
	"sync"
	"time"
)

// Repository persists booking attempts between the phases of the payment
// flow.
type Repository interface {
	Create(ctx context.Context, attempt *Attempt) error
	GetByOrderID(ctx context.Context, orderID string) (*Attempt, error)
	UpdateState(ctx context.Context, id string, state State, failure string) error
	MarkConfirmed(ctx context.Context, id string, appointmentID string) error
}

// InMemoryRepository is an in-memory Repository used by tests and local
// development.
type InMemoryRepository struct {
	mu        sync.RWMutex
	byID      map[string]*Attempt
	byOrderID map[string]string
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byID:      make(map[string]*Attempt),
		byOrderID: make(map[string]string),
	}
}

// Create stores a new attempt.
func (r *InMemoryRepository) Create(ctx context.Context, attempt *Attempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *attempt
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.byID[stored.ID] = &stored
	if stored.OrderID != "" {
		r.byOrderID[stored.OrderID] = stored.ID
	}
	attempt.CreatedAt = now
	attempt.UpdatedAt = now
	return nil
}

// GetByOrderID loads the attempt correlated with a provider order.
func (r *InMemoryRepository) GetByOrderID(ctx context.Context, orderID string) (*Attempt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byOrderID[orderID]
	if !ok {
		return nil, ErrAttemptNotFound
	}
	copied := *r.byID[id]
	return &copied, nil
}

// UpdateState persists a state transition marker.
func (r *InMemoryRepository) UpdateState(ctx context.Context, id string, state State, failure string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	attempt, ok := r.byID[id]
	if !ok {
		return ErrAttemptNotFound
	}
	attempt.State = state
	attempt.Failure = failure
	attempt.UpdatedAt = time.Now().UTC()
	return nil
}

// MarkConfirmed records the committed appointment on the attempt.
func (r *InMemoryRepository) MarkConfirmed(ctx context.Context, id string, appointmentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	attempt, ok := r.byID[id]
	if !ok {
		return ErrAttemptNotFound
	}
	attempt.State = StateConfirmed
	attempt.AppointmentID = appointmentID
	attempt.Failure = ""
	attempt.UpdatedAt = time.Now().UTC()
	return nil
}
