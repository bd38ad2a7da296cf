package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func TestPostgresCreateAttempt(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("INSERT INTO booking_attempts").
		WithArgs("a1", string(StateAwaitingPayment), "Ravi", "r@example.com", "+911", "2025-06-01", "10:00", "", pgxmock.AnyArg(), int64(50000), "INR", "").
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	repo := NewPostgresRepositoryWithPool(mock)
	attempt := &Attempt{
		ID: "a1", State: StateAwaitingPayment,
		Name: "Ravi", Email: "r@example.com", Phone: "+911",
		Date: "2025-06-01", Slot: "10:00",
		OrderID: "order_1", Amount: 50000, Currency: "INR",
	}
	if err := repo.Create(context.Background(), attempt); err != nil {
		t.Fatalf("create: %v", err)
	}
	if attempt.CreatedAt.IsZero() {
		t.Fatal("expected created_at populated")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresGetByOrderID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	now := time.Now().UTC()
	orderID := "order_1"
	rows := pgxmock.NewRows([]string{
		"id", "state", "name", "email", "phone", "date", "slot", "notes",
		"order_id", "amount", "currency", "appointment_id", "failure",
		"created_at", "updated_at",
	}).AddRow(
		"a1", string(StateAwaitingPayment), "Ravi", "r@example.com", "+911",
		"2025-06-01", "10:00", (*string)(nil),
		&orderID, int64(50000), "INR", (*string)(nil), (*string)(nil),
		now, now,
	)
	mock.ExpectQuery("SELECT (.+) FROM booking_attempts").
		WithArgs("order_1").
		WillReturnRows(rows)

	repo := NewPostgresRepositoryWithPool(mock)
	attempt, err := repo.GetByOrderID(context.Background(), "order_1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if attempt.State != StateAwaitingPayment || attempt.OrderID != "order_1" {
		t.Fatalf("unexpected attempt %+v", attempt)
	}
}

func TestPostgresUpdateStateNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec("UPDATE booking_attempts").
		WithArgs("a-missing", string(StatePaymentCancelled), "", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := NewPostgresRepositoryWithPool(mock)
	if err := repo.UpdateState(context.Background(), "a-missing", StatePaymentCancelled, ""); !errors.Is(err, ErrAttemptNotFound) {
		t.Fatalf("expected ErrAttemptNotFound, got %v", err)
	}
}

func TestPostgresMarkConfirmed(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec("UPDATE booking_attempts").
		WithArgs("a1", string(StateConfirmed), "appt1", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	repo := NewPostgresRepositoryWithPool(mock)
	if err := repo.MarkConfirmed(context.Background(), "a1", "appt1"); err != nil {
		t.Fatalf("mark confirmed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
