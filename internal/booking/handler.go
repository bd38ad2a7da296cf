package booking

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rkaushal27/stargaze-booking/internal/appointments"
	"github.com/rkaushal27/stargaze-booking/pkg/logging"
)

// Handler handles HTTP requests for the booking flow
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a new booking handler
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

// BeginResponse hands the client what it needs to open the provider's
// payment UI.
type BeginResponse struct {
	AttemptID string `json:"attempt_id"`
	State     State  `json:"state"`
	OrderID   string `json:"order_id"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
}

// Begin handles POST /api/bookings requests
func (h *Handler) Begin(w http.ResponseWriter, r *http.Request) {
	var req BeginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	attempt, err := h.service.Begin(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrSlotUnavailable):
			http.Error(w, "This time slot is no longer available, please pick another", http.StatusConflict)
		case errors.Is(err, ErrPaymentOrder):
			http.Error(w, "Could not reach the payment provider, please try again", http.StatusBadGateway)
		case isSelectionError(err):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			h.logger.Error("failed to begin booking", "error", err)
			http.Error(w, "Failed to start booking", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(BeginResponse{
		AttemptID: attempt.ID,
		State:     attempt.State,
		OrderID:   attempt.OrderID,
		Amount:    attempt.Amount,
		Currency:  attempt.Currency,
	})
}

// CompleteRequest carries the provider's payment-completion callback.
type CompleteRequest struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

// CompleteResponse reports the attempt's terminal state after completion.
type CompleteResponse struct {
	Success     bool   `json:"success"`
	State       State  `json:"state"`
	Appointment string `json:"appointment_id,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Complete handles POST /api/bookings/complete requests
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	var req CompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	attempt, err := h.service.Complete(r.Context(), req.OrderID, req.PaymentID, req.Signature)
	if err != nil {
		switch {
		case errors.Is(err, ErrAttemptNotFound):
			http.Error(w, "No booking attempt matches this order", http.StatusNotFound)
		case errors.Is(err, ErrAttemptFinished):
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(CompleteResponse{
				Success: attempt.State == StateConfirmed,
				State:   attempt.State,
				Error:   "This booking attempt already finished",
			})
		case errors.Is(err, ErrVerificationFailed):
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(CompleteResponse{
				Success: false,
				State:   StateVerificationFailed,
				Error:   "Invalid signature",
			})
		case errors.Is(err, ErrCommitFailedAfterPayment):
			// Payment was captured. This must read differently from every
			// retryable error the user can see.
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(CompleteResponse{
				Success: false,
				State:   StateCommitFailedAfterPayment,
				Error:   "Your payment went through but the booking could not be saved. Please contact support, do not pay again.",
			})
		default:
			h.logger.Error("failed to complete booking", "error", err)
			http.Error(w, "Failed to complete booking", http.StatusInternalServerError)
		}
		return
	}

	json.NewEncoder(w).Encode(CompleteResponse{
		Success:     true,
		State:       attempt.State,
		Appointment: attempt.AppointmentID,
	})
}

// CancelRequest identifies the attempt the user walked away from.
type CancelRequest struct {
	OrderID string `json:"razorpay_order_id"`
}

// Cancel handles POST /api/bookings/cancel requests
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	var req CancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	attempt, err := h.service.Cancel(r.Context(), req.OrderID)
	if err != nil {
		switch {
		case errors.Is(err, ErrAttemptNotFound):
			http.Error(w, "No booking attempt matches this order", http.StatusNotFound)
		case errors.Is(err, ErrAttemptFinished):
			http.Error(w, "This booking attempt already finished", http.StatusConflict)
		default:
			h.logger.Error("failed to cancel booking", "error", err)
			http.Error(w, "Failed to cancel booking", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"state": string(attempt.State)})
}

func isSelectionError(err error) bool {
	return errors.Is(err, appointments.ErrInvalidName) ||
		errors.Is(err, appointments.ErrInvalidEmail) ||
		errors.Is(err, appointments.ErrInvalidPhone) ||
		errors.Is(err, appointments.ErrInvalidDate) ||
		errors.Is(err, appointments.ErrInvalidSlot)
}
