package appointments

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for appointment storage
type Repository interface {
	Create(ctx context.Context, req *CreateAppointmentRequest) (*Appointment, error)
	ListByDate(ctx context.Context, date string) ([]*Appointment, error)
	List(ctx context.Context) ([]*Appointment, error)
}

// InMemoryRepository is an in-memory Repository used by tests and local
// development. It enforces the same (date, time) uniqueness as the database.
type InMemoryRepository struct {
	mu     sync.RWMutex
	byID   map[string]*Appointment
	bySlot map[string]string // date|slot -> appointment id
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byID:   make(map[string]*Appointment),
		bySlot: make(map[string]string),
	}
}

// Create inserts an appointment, refusing duplicates on (date, time).
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateAppointmentRequest) (*Appointment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	key := req.Date + "|" + req.Slot

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.bySlot[key]; exists {
		return nil, ErrSlotTaken
	}

	appt := &Appointment{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Date:      req.Date,
		Slot:      req.Slot,
		Notes:     req.Notes,
		CreatedAt: time.Now().UTC(),
	}
	r.byID[appt.ID] = appt
	r.bySlot[key] = appt.ID
	return appt, nil
}

// ListByDate returns all appointments for one calendar date.
func (r *InMemoryRepository) ListByDate(ctx context.Context, date string) ([]*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Appointment
	for _, appt := range r.byID {
		if appt.Date == date {
			out = append(out, appt)
		}
	}
	sortAppointments(out)
	return out, nil
}

// List returns every appointment.
func (r *InMemoryRepository) List(ctx context.Context) ([]*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Appointment, 0, len(r.byID))
	for _, appt := range r.byID {
		out = append(out, appt)
	}
	sortAppointments(out)
	return out, nil
}

func sortAppointments(appts []*Appointment) {
	sort.Slice(appts, func(i, j int) bool {
		if appts[i].Date != appts[j].Date {
			return appts[i].Date < appts[j].Date
		}
		return appts[i].Slot < appts[j].Slot
	})
}
