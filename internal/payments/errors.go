package payments

import "errors"

var (
	// ErrProvider is returned when the payment provider rejects or fails an
	// order-creation call. Attempts failing here are fully retryable; nothing
	// has been persisted.
	ErrProvider = errors.New("payment provider request failed")

	// ErrMissingCredentials is returned when no Razorpay key pair is configured
	ErrMissingCredentials = errors.New("razorpay credentials not configured")
)
