package availability

import (
	"context"
	"errors"

	"github.com/rkaushal27/stargaze-booking/internal/appointments"
	"github.com/rkaushal27/stargaze-booking/internal/blocking"
	"github.com/rkaushal27/stargaze-booking/internal/slots"
)

// ErrInvalidDate is returned when the requested date is missing or malformed
var ErrInvalidDate = errors.New("date must be a valid YYYY-MM-DD date")

type appointmentReader interface {
	ListByDate(ctx context.Context, date string) ([]*appointments.Appointment, error)
}

type blockReader interface {
	ListByDate(ctx context.Context, date string) ([]*blocking.BlockedSlot, error)
}

// Service computes which catalog slots are unavailable on a date. It is a
// pure read-side projection over appointments and blocked slots: every call
// reads current persisted state, never a cache.
type Service struct {
	appointments appointmentReader
	blocks       blockReader
}

// NewService constructs an availability service.
func NewService(appointments appointmentReader, blocks blockReader) *Service {
	if appointments == nil || blocks == nil {
		panic("availability: both readers required")
	}
	return &Service{appointments: appointments, blocks: blocks}
}

// UnavailableSlots returns the union of booked and blocked slot labels for
// the date, in catalog order. The result is advisory for bookers: a slot can
// still be lost between this read and commit time.
func (s *Service) UnavailableSlots(ctx context.Context, date string) ([]slots.Label, error) {
	if _, err := slots.ParseDate(date); err != nil {
		return nil, ErrInvalidDate
	}

	taken := make(map[string]struct{}, slots.Count)

	appts, err := s.appointments.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	for _, appt := range appts {
		taken[appt.Slot] = struct{}{}
	}

	blocks, err := s.blocks.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	for _, block := range blocks {
		taken[block.Slot] = struct{}{}
	}

	unavailable := make([]slots.Label, 0, len(taken))
	for _, label := range slots.All() {
		if _, ok := taken[label]; ok {
			unavailable = append(unavailable, label)
		}
	}
	return unavailable, nil
}

// FullyBooked reports whether no catalog slot remains bookable on the date.
// Callers treat this as "fully booked", not as an error.
func (s *Service) FullyBooked(ctx context.Context, date string) (bool, error) {
	unavailable, err := s.UnavailableSlots(ctx, date)
	if err != nil {
		return false, err
	}
	return len(unavailable) == slots.Count, nil
}

// IsUnavailable reports whether one specific slot is booked or blocked.
func (s *Service) IsUnavailable(ctx context.Context, date, slot string) (bool, error) {
	unavailable, err := s.UnavailableSlots(ctx, date)
	if err != nil {
		return false, err
	}
	for _, label := range unavailable {
		if label == slot {
			return true, nil
		}
	}
	return false, nil
}
