package booking

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rkaushal27/stargaze-booking/internal/appointments"
	"github.com/rkaushal27/stargaze-booking/internal/observability/metrics"
	"github.com/rkaushal27/stargaze-booking/internal/payments"
	"github.com/rkaushal27/stargaze-booking/pkg/logging"
)

type availabilityChecker interface {
	IsUnavailable(ctx context.Context, date, slot string) (bool, error)
}

type appointmentCommitter interface {
	Commit(ctx context.Context, req *appointments.CreateAppointmentRequest) (*appointments.Appointment, error)
}

// Service drives a booking attempt end to end: availability check, payment
// order, signature verification, appointment commit. Each phase transition
// is persisted so the flow survives process restarts while the user sits in
// the provider's payment UI.
type Service struct {
	availability availabilityChecker
	orders       payments.OrderCreator
	verifier     payments.SignatureVerifier
	committer    appointmentCommitter
	attempts     Repository
	amountMinor  int64
	currency     string
	metrics      *metrics.BookingMetrics
	logger       *logging.Logger
}

// NewService constructs the booking orchestrator.
func NewService(
	availability availabilityChecker,
	orders payments.OrderCreator,
	verifier payments.SignatureVerifier,
	committer appointmentCommitter,
	attempts Repository,
	amountMinor int64,
	currency string,
	m *metrics.BookingMetrics,
	logger *logging.Logger,
) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		availability: availability,
		orders:       orders,
		verifier:     verifier,
		committer:    committer,
		attempts:     attempts,
		amountMinor:  amountMinor,
		currency:     currency,
		metrics:      m,
		logger:       logger,
	}
}

// BeginRequest carries the client's slot selection and contact details.
type BeginRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Date  string `json:"date"`
	Slot  string `json:"time"`
	Notes string `json:"notes"`
}

// Begin starts a booking attempt: validates the selection, checks the slot
// is currently free, creates a provider order and persists the attempt in
// awaiting_payment. The availability read is advisory; the commit step
// still wins or loses the slot race.
func (s *Service) Begin(ctx context.Context, req *BeginRequest) (*Attempt, error) {
	commitReq := &appointments.CreateAppointmentRequest{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Date:  req.Date,
		Slot:  req.Slot,
		Notes: req.Notes,
	}
	if err := commitReq.Validate(); err != nil {
		return nil, err
	}

	unavailable, err := s.availability.IsUnavailable(ctx, req.Date, req.Slot)
	if err != nil {
		return nil, fmt.Errorf("booking: availability check: %w", err)
	}
	if unavailable {
		return nil, ErrSlotUnavailable
	}

	attempt := &Attempt{
		ID:       uuid.New().String(),
		State:    StateAwaitingPayment,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Date:     req.Date,
		Slot:     req.Slot,
		Notes:    req.Notes,
		Amount:   s.amountMinor,
		Currency: s.currency,
	}

	order, err := s.orders.CreateOrder(ctx, s.amountMinor, s.currency)
	if err != nil {
		attempt.State = StatePaymentOrderFailed
		attempt.Failure = err.Error()
		if createErr := s.attempts.Create(ctx, attempt); createErr != nil {
			s.logger.Error("failed to record failed attempt", "error", createErr)
		}
		s.metrics.ObserveAttemptOutcome(string(StatePaymentOrderFailed))
		s.logger.Error("payment order creation failed", "error", err, "date", req.Date, "slot", req.Slot)
		return nil, fmt.Errorf("%w: %w", ErrPaymentOrder, err)
	}

	attempt.OrderID = order.ID
	attempt.Amount = order.Amount
	attempt.Currency = order.Currency
	if err := s.attempts.Create(ctx, attempt); err != nil {
		return nil, fmt.Errorf("booking: persist attempt: %w", err)
	}

	s.logger.Info("booking attempt awaiting payment",
		"attempt_id", attempt.ID,
		"order_id", attempt.OrderID,
		"date", attempt.Date,
		"slot", attempt.Slot,
	)
	return attempt, nil
}

// Complete finishes an attempt after the provider reports payment. The
// signature is the only trusted proof of completion. A commit failure after
// a verified payment is the critical path: the attempt is marked
// commit_failed_after_payment and must reach an operator, never a retry
// button.
func (s *Service) Complete(ctx context.Context, orderID, paymentID, signature string) (*Attempt, error) {
	attempt, err := s.attempts.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if attempt.State.Terminal() {
		return attempt, ErrAttemptFinished
	}

	if err := s.attempts.UpdateState(ctx, attempt.ID, StateVerifyingPayment, ""); err != nil {
		return nil, err
	}
	attempt.State = StateVerifyingPayment

	if !s.verifier.VerifySignature(orderID, paymentID, signature) {
		if err := s.attempts.UpdateState(ctx, attempt.ID, StateVerificationFailed, "signature mismatch"); err != nil {
			return nil, err
		}
		attempt.State = StateVerificationFailed
		s.metrics.ObserveVerificationFailure()
		s.metrics.ObserveAttemptOutcome(string(StateVerificationFailed))
		s.logger.Warn("payment signature verification failed",
			"attempt_id", attempt.ID,
			"order_id", orderID,
			"payment_id", paymentID,
		)
		return attempt, ErrVerificationFailed
	}

	if err := s.attempts.UpdateState(ctx, attempt.ID, StateCommitting, ""); err != nil {
		return nil, err
	}
	attempt.State = StateCommitting

	appt, err := s.committer.Commit(ctx, &appointments.CreateAppointmentRequest{
		Name:  attempt.Name,
		Email: attempt.Email,
		Phone: attempt.Phone,
		Date:  attempt.Date,
		Slot:  attempt.Slot,
		Notes: attempt.Notes,
	})
	if err != nil {
		if stateErr := s.attempts.UpdateState(ctx, attempt.ID, StateCommitFailedAfterPayment, err.Error()); stateErr != nil {
			s.logger.Error("failed to record commit failure", "error", stateErr, "attempt_id", attempt.ID)
		}
		attempt.State = StateCommitFailedAfterPayment
		attempt.Failure = err.Error()
		s.metrics.ObserveCommitFailedAfterPayment()
		s.metrics.ObserveAttemptOutcome(string(StateCommitFailedAfterPayment))
		s.logger.Error("payment captured but booking commit failed, manual reconciliation required",
			"attempt_id", attempt.ID,
			"order_id", orderID,
			"payment_id", paymentID,
			"date", attempt.Date,
			"slot", attempt.Slot,
			"cause", err,
		)
		return attempt, fmt.Errorf("%w: %w", ErrCommitFailedAfterPayment, err)
	}

	if err := s.attempts.MarkConfirmed(ctx, attempt.ID, appt.ID); err != nil {
		return nil, err
	}
	attempt.State = StateConfirmed
	attempt.AppointmentID = appt.ID
	s.metrics.ObserveBookingConfirmed()
	s.metrics.ObserveAttemptOutcome(string(StateConfirmed))
	s.logger.Info("booking confirmed",
		"attempt_id", attempt.ID,
		"appointment_id", appt.ID,
		"date", attempt.Date,
		"slot", attempt.Slot,
	)
	return attempt, nil
}

// Cancel records that the user dismissed the payment flow. The slot was
// never held, so nothing else changes.
func (s *Service) Cancel(ctx context.Context, orderID string) (*Attempt, error) {
	attempt, err := s.attempts.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if attempt.State.Terminal() {
		return attempt, ErrAttemptFinished
	}

	if err := s.attempts.UpdateState(ctx, attempt.ID, StatePaymentCancelled, ""); err != nil {
		return nil, err
	}
	attempt.State = StatePaymentCancelled
	s.metrics.ObserveAttemptOutcome(string(StatePaymentCancelled))
	s.logger.Info("booking attempt cancelled", "attempt_id", attempt.ID, "order_id", orderID)
	return attempt, nil
}
