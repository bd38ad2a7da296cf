package appointments

import (
	"context"

	"github.com/rkaushal27/stargaze-booking/pkg/logging"
)

// Service finalizes paid bookings. It is the single authority that marks a
// (date, time) slot as taken; callers must have verified payment first.
type Service struct {
	repo   Repository
	logger *logging.Logger
}

// NewService constructs an appointments service.
func NewService(repo Repository, logger *logging.Logger) *Service {
	if repo == nil {
		panic("appointments: repository required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// Commit durably persists a confirmed appointment. ErrSlotTaken means the
// slot was claimed between the caller's availability read and now.
func (s *Service) Commit(ctx context.Context, req *CreateAppointmentRequest) (*Appointment, error) {
	appt, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.logger.Info("appointment committed",
		"id", appt.ID,
		"date", appt.Date,
		"slot", appt.Slot,
	)
	return appt, nil
}

// List returns all appointments for the admin dashboard.
func (s *Service) List(ctx context.Context) ([]*Appointment, error) {
	return s.repo.List(ctx)
}
