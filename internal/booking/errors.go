package booking

import "errors"

var (
	// ErrSlotUnavailable is returned when the chosen slot is already booked
	// or blocked at selection time. Advisory: the commit step is the final
	// authority.
	ErrSlotUnavailable = errors.New("slot is no longer available")

	// ErrPaymentOrder is returned when the provider refuses to create the
	// payment order. The attempt is terminal; the user may start over.
	ErrPaymentOrder = errors.New("payment order creation failed")

	// ErrAttemptNotFound is returned when no attempt matches the order id
	ErrAttemptNotFound = errors.New("booking attempt not found")

	// ErrAttemptFinished is returned when a completion or cancellation
	// arrives for an attempt already in a terminal state
	ErrAttemptFinished = errors.New("booking attempt already finished")

	// ErrVerificationFailed is returned when the payment signature does not
	// verify. No booking is created; the event is security-logged.
	ErrVerificationFailed = errors.New("payment verification failed")

	// ErrCommitFailedAfterPayment is returned when the appointment commit
	// fails after the payment was captured. Not retryable automatically:
	// an operator must reconcile or refund.
	ErrCommitFailedAfterPayment = errors.New("booking failed after payment was captured")
)
