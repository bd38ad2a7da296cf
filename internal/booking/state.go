package booking

import "time"

// State is a booking attempt's position in the payment-to-commit flow.
// Attempts are durable: the process may restart between awaiting_payment and
// verification, so every transition is persisted.
type State string

const (
	StateSelectingSlot    State = "selecting_slot"
	StateAwaitingPayment  State = "awaiting_payment"
	StateVerifyingPayment State = "verifying_payment"
	StateCommitting       State = "committing"
	StateConfirmed        State = "confirmed"

	// Terminal failure states. Everything before committing is safely
	// retryable from scratch; commit_failed_after_payment is not, the
	// payment has been captured and an operator must reconcile.
	StatePaymentOrderFailed       State = "payment_order_failed"
	StatePaymentCancelled         State = "payment_cancelled"
	StateVerificationFailed       State = "verification_failed"
	StateCommitFailedAfterPayment State = "commit_failed_after_payment"
)

// Terminal reports whether no further transition is allowed from s.
func (s State) Terminal() bool {
	switch s {
	case StateConfirmed, StatePaymentOrderFailed, StatePaymentCancelled,
		StateVerificationFailed, StateCommitFailedAfterPayment:
		return true
	}
	return false
}

// Attempt is one client's run through the booking flow. The provider order
// id is the correlation key once payment is in flight.
type Attempt struct {
	ID            string    `json:"id"`
	State         State     `json:"state"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Date          string    `json:"date"`
	Slot          string    `json:"time"`
	Notes         string    `json:"notes,omitempty"`
	OrderID       string    `json:"order_id,omitempty"`
	Amount        int64     `json:"amount,omitempty"`
	Currency      string    `json:"currency,omitempty"`
	AppointmentID string    `json:"appointment_id,omitempty"`
	Failure       string    `json:"failure,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
