package blocking

import (
	"context"
	"strings"

	"github.com/rkaushal27/stargaze-booking/internal/slots"
	"github.com/rkaushal27/stargaze-booking/pkg/logging"
)

// Service creates and removes administrator blocks. Whole-day blocking only
// fills gaps in the blocked_slots table; it never touches appointments.
type Service struct {
	repo   Repository
	logger *logging.Logger
}

// NewService constructs a blocking service.
func NewService(repo Repository, logger *logging.Logger) *Service {
	if repo == nil {
		panic("blocking: repository required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// BlockSlot blocks a single (date, time) pair.
func (s *Service) BlockSlot(ctx context.Context, date, slot, reason string) (*BlockedSlot, error) {
	req := &BlockSlotRequest{Date: date, Slot: slot, Reason: reason}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	block, err := s.repo.Create(ctx, date, slot, strings.TrimSpace(reason))
	if err != nil {
		return nil, err
	}
	s.logger.Info("slot blocked", "date", date, "slot", slot)
	return block, nil
}

// BlockWholeDay blocks every catalog slot on the date that is not blocked
// yet and returns the number of slots newly blocked. Calling it again for
// the same date is a no-op reporting 0.
func (s *Service) BlockWholeDay(ctx context.Context, date, reason string) (int, error) {
	req := &BlockSlotRequest{Date: date, WholeDay: true}
	if err := req.Validate(); err != nil {
		return 0, err
	}
	if strings.TrimSpace(reason) == "" {
		reason = DefaultWholeDayReason
	}

	inserted, err := s.repo.CreateMissing(ctx, date, slots.All(), reason)
	if err != nil {
		return 0, err
	}
	s.logger.Info("whole day blocked", "date", date, "newly_blocked", inserted)
	return inserted, nil
}

// RemoveBlock deletes a block by id. ErrBlockNotFound when it does not exist.
func (s *Service) RemoveBlock(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("block removed", "id", id)
	return nil
}

// ListBlocked returns every block for the admin dashboard.
func (s *Service) ListBlocked(ctx context.Context) ([]*BlockedSlot, error) {
	return s.repo.List(ctx)
}

// ListBlockedByDate returns the blocks for one date.
func (s *Service) ListBlockedByDate(ctx context.Context, date string) ([]*BlockedSlot, error) {
	if _, err := slots.ParseDate(date); err != nil {
		return nil, ErrInvalidDate
	}
	return s.repo.ListByDate(ctx, date)
}
