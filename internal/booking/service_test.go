package booking

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rkaushal27/stargaze-booking/internal/appointments"
	"github.com/rkaushal27/stargaze-booking/internal/availability"
	"github.com/rkaushal27/stargaze-booking/internal/blocking"
	"github.com/rkaushal27/stargaze-booking/internal/payments"
	"github.com/rkaushal27/stargaze-booking/pkg/logging"
)

type stubOrders struct {
	nextID string
	err    error
	calls  int
}

func (s *stubOrders) CreateOrder(ctx context.Context, amountMinor int64, currency string) (*payments.Order, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	id := s.nextID
	if id == "" {
		id = fmt.Sprintf("order_%d", s.calls)
	}
	return &payments.Order{ID: id, Amount: amountMinor, Currency: currency}, nil
}

type stubVerifier struct{ valid bool }

func (s *stubVerifier) VerifySignature(orderID, paymentID, signature string) bool { return s.valid }

type fixture struct {
	service   *Service
	attempts  *InMemoryRepository
	apptRepo  *appointments.InMemoryRepository
	blockRepo *blocking.InMemoryRepository
	orders    *stubOrders
	verifier  *stubVerifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		attempts:  NewInMemoryRepository(),
		apptRepo:  appointments.NewInMemoryRepository(),
		blockRepo: blocking.NewInMemoryRepository(),
		orders:    &stubOrders{},
		verifier:  &stubVerifier{valid: true},
	}
	avail := availability.NewService(f.apptRepo, f.blockRepo)
	committer := appointments.NewService(f.apptRepo, logging.Default())
	f.service = NewService(avail, f.orders, f.verifier, committer, f.attempts, 50000, "INR", nil, logging.Default())
	return f
}

func beginRequest() *BeginRequest {
	return &BeginRequest{
		Name:  "Ravi Kumar",
		Email: "ravi@example.com",
		Phone: "+919812345678",
		Date:  "2025-06-01",
		Slot:  "10:00",
		Notes: "new moon night",
	}
}

func TestBeginCreatesAwaitingPaymentAttempt(t *testing.T) {
	f := newFixture(t)

	attempt, err := f.service.Begin(context.Background(), beginRequest())
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if attempt.State != StateAwaitingPayment {
		t.Fatalf("expected awaiting_payment, got %s", attempt.State)
	}
	if attempt.OrderID == "" {
		t.Fatal("expected provider order id on attempt")
	}
	if attempt.Amount != 50000 || attempt.Currency != "INR" {
		t.Fatalf("expected server-decided amount, got %d %s", attempt.Amount, attempt.Currency)
	}

	stored, err := f.attempts.GetByOrderID(context.Background(), attempt.OrderID)
	if err != nil {
		t.Fatalf("attempt not durable: %v", err)
	}
	if stored.State != StateAwaitingPayment {
		t.Fatalf("stored state %s", stored.State)
	}
}

func TestBeginRejectsInvalidSelection(t *testing.T) {
	f := newFixture(t)

	req := beginRequest()
	req.Slot = "03:00"
	if _, err := f.service.Begin(context.Background(), req); !errors.Is(err, appointments.ErrInvalidSlot) {
		t.Fatalf("expected ErrInvalidSlot, got %v", err)
	}
	if f.orders.calls != 0 {
		t.Fatal("no provider order may be created for invalid input")
	}
}

func TestBeginRejectsUnavailableSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.apptRepo.Create(ctx, &appointments.CreateAppointmentRequest{
		Name: "Other", Email: "o@example.com", Phone: "+911111111111",
		Date: "2025-06-01", Slot: "10:00",
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := f.service.Begin(ctx, beginRequest()); !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("expected ErrSlotUnavailable, got %v", err)
	}
	if f.orders.calls != 0 {
		t.Fatal("no provider order may be created for a taken slot")
	}
}

func TestBeginRejectsBlockedSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.blockRepo.Create(ctx, "2025-06-01", "10:00", "maintenance"); err != nil {
		t.Fatalf("seed block: %v", err)
	}

	if _, err := f.service.Begin(ctx, beginRequest()); !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("expected ErrSlotUnavailable for blocked slot, got %v", err)
	}
}

func TestBeginPaymentOrderFailure(t *testing.T) {
	f := newFixture(t)
	f.orders.err = payments.ErrProvider

	_, err := f.service.Begin(context.Background(), beginRequest())
	if !errors.Is(err, ErrPaymentOrder) {
		t.Fatalf("expected ErrPaymentOrder, got %v", err)
	}
	// Fully retryable: no appointment was created.
	appts, _ := f.apptRepo.ListByDate(context.Background(), "2025-06-01")
	if len(appts) != 0 {
		t.Fatal("no appointment may exist after order failure")
	}
}

func TestCompleteConfirmsBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	attempt, err := f.service.Begin(ctx, beginRequest())
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	done, err := f.service.Complete(ctx, attempt.OrderID, "pay_1", "sig")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.State != StateConfirmed {
		t.Fatalf("expected confirmed, got %s", done.State)
	}
	if done.AppointmentID == "" {
		t.Fatal("expected appointment id on confirmed attempt")
	}

	appts, _ := f.apptRepo.ListByDate(ctx, "2025-06-01")
	if len(appts) != 1 || appts[0].Slot != "10:00" {
		t.Fatalf("expected committed appointment, got %v", appts)
	}
}

func TestCompleteVerificationFailure(t *testing.T) {
	f := newFixture(t)
	f.verifier.valid = false
	ctx := context.Background()

	attempt, err := f.service.Begin(ctx, beginRequest())
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	done, err := f.service.Complete(ctx, attempt.OrderID, "pay_1", "forged")
	if !errors.Is(err, ErrVerificationFailed) {
		t.Fatalf("expected ErrVerificationFailed, got %v", err)
	}
	if done.State != StateVerificationFailed {
		t.Fatalf("expected verification_failed, got %s", done.State)
	}

	// No booking was persisted for the unverified payment.
	appts, _ := f.apptRepo.ListByDate(ctx, "2025-06-01")
	if len(appts) != 0 {
		t.Fatal("no appointment may exist after verification failure")
	}
}

func TestCompleteLostRaceIsCommitFailedAfterPayment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	attempt, err := f.service.Begin(ctx, beginRequest())
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	// Another booker takes the slot between selection and commit.
	if _, err := f.apptRepo.Create(ctx, &appointments.CreateAppointmentRequest{
		Name: "Faster", Email: "f@example.com", Phone: "+912222222222",
		Date: "2025-06-01", Slot: "10:00",
	}); err != nil {
		t.Fatalf("seed race winner: %v", err)
	}

	done, err := f.service.Complete(ctx, attempt.OrderID, "pay_1", "sig")
	if !errors.Is(err, ErrCommitFailedAfterPayment) {
		t.Fatalf("expected ErrCommitFailedAfterPayment, got %v", err)
	}
	if errors.Is(err, ErrVerificationFailed) {
		t.Fatal("commit failure must be distinct from verification failure")
	}
	if done.State != StateCommitFailedAfterPayment {
		t.Fatalf("expected commit_failed_after_payment, got %s", done.State)
	}

	// Only the race winner's appointment exists.
	appts, _ := f.apptRepo.ListByDate(ctx, "2025-06-01")
	if len(appts) != 1 || appts[0].Name != "Faster" {
		t.Fatalf("expected only winner's appointment, got %v", appts)
	}
}

func TestCompleteUnknownOrder(t *testing.T) {
	f := newFixture(t)

	if _, err := f.service.Complete(context.Background(), "order_unknown", "pay", "sig"); !errors.Is(err, ErrAttemptNotFound) {
		t.Fatalf("expected ErrAttemptNotFound, got %v", err)
	}
}

func TestCompleteIsRejectedTwice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	attempt, _ := f.service.Begin(ctx, beginRequest())
	if _, err := f.service.Complete(ctx, attempt.OrderID, "pay_1", "sig"); err != nil {
		t.Fatalf("first complete: %v", err)
	}
	done, err := f.service.Complete(ctx, attempt.OrderID, "pay_1", "sig")
	if !errors.Is(err, ErrAttemptFinished) {
		t.Fatalf("expected ErrAttemptFinished, got %v", err)
	}
	if done.State != StateConfirmed {
		t.Fatalf("attempt state must remain confirmed, got %s", done.State)
	}
}

func TestCancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	attempt, _ := f.service.Begin(ctx, beginRequest())
	done, err := f.service.Cancel(ctx, attempt.OrderID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if done.State != StatePaymentCancelled {
		t.Fatalf("expected payment_cancelled, got %s", done.State)
	}

	// The slot stays free for other bookers.
	if _, err := f.service.Begin(ctx, beginRequest()); err != nil {
		t.Fatalf("expected slot to remain bookable, got %v", err)
	}

	if _, err := f.service.Cancel(ctx, attempt.OrderID); !errors.Is(err, ErrAttemptFinished) {
		t.Fatalf("expected ErrAttemptFinished on double cancel, got %v", err)
	}
}
