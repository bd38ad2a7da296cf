package blocking

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for blocked-slot storage
type Repository interface {
	Create(ctx context.Context, date, slot, reason string) (*BlockedSlot, error)
	// CreateMissing inserts a block for every given slot that is not blocked
	// yet, atomically, and returns the number of rows actually inserted.
	CreateMissing(ctx context.Context, date string, slotLabels []string, reason string) (int, error)
	Delete(ctx context.Context, id string) error
	ListByDate(ctx context.Context, date string) ([]*BlockedSlot, error)
	List(ctx context.Context) ([]*BlockedSlot, error)
}

// InMemoryRepository is an in-memory Repository used by tests and local
// development. It enforces the same (date, time) uniqueness as the database.
type InMemoryRepository struct {
	mu     sync.RWMutex
	byID   map[string]*BlockedSlot
	bySlot map[string]string // date|slot -> block id
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byID:   make(map[string]*BlockedSlot),
		bySlot: make(map[string]string),
	}
}

// Create inserts a block, refusing duplicates on (date, time).
func (r *InMemoryRepository) Create(ctx context.Context, date, slot, reason string) (*BlockedSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insertLocked(date, slot, reason)
}

// CreateMissing blocks every slot not yet blocked on the date.
func (r *InMemoryRepository) CreateMissing(ctx context.Context, date string, slotLabels []string, reason string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	inserted := 0
	for _, slot := range slotLabels {
		if _, exists := r.bySlot[date+"|"+slot]; exists {
			continue
		}
		if _, err := r.insertLocked(date, slot, reason); err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

// Delete removes a block by id.
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	block, ok := r.byID[id]
	if !ok {
		return ErrBlockNotFound
	}
	delete(r.byID, id)
	delete(r.bySlot, block.Date+"|"+block.Slot)
	return nil
}

// ListByDate returns all blocks for one calendar date.
func (r *InMemoryRepository) ListByDate(ctx context.Context, date string) ([]*BlockedSlot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*BlockedSlot
	for _, block := range r.byID {
		if block.Date == date {
			out = append(out, block)
		}
	}
	sortBlocks(out)
	return out, nil
}

// List returns every block.
func (r *InMemoryRepository) List(ctx context.Context) ([]*BlockedSlot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*BlockedSlot, 0, len(r.byID))
	for _, block := range r.byID {
		out = append(out, block)
	}
	sortBlocks(out)
	return out, nil
}

func (r *InMemoryRepository) insertLocked(date, slot, reason string) (*BlockedSlot, error) {
	key := date + "|" + slot
	if _, exists := r.bySlot[key]; exists {
		return nil, ErrAlreadyBlocked
	}
	block := &BlockedSlot{
		ID:        uuid.New().String(),
		Date:      date,
		Slot:      slot,
		Reason:    reason,
		CreatedAt: time.Now().UTC(),
	}
	r.byID[block.ID] = block
	r.bySlot[key] = block.ID
	return block, nil
}

func sortBlocks(blocks []*BlockedSlot) {
	sort.Slice(blocks, func(i, j int) bool {
		if blocks[i].Date != blocks[j].Date {
			return blocks[i].Date < blocks[j].Date
		}
		return blocks[i].Slot < blocks[j].Slot
	})
}
