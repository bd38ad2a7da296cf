package payments

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rkaushal27/stargaze-booking/internal/observability/metrics"
	"github.com/rkaushal27/stargaze-booking/pkg/logging"
)

// OrderCreator creates provider orders; satisfied by Client and test fakes.
type OrderCreator interface {
	CreateOrder(ctx context.Context, amountMinor int64, currency string) (*Order, error)
}

// SignatureVerifier checks payment-completion signatures.
type SignatureVerifier interface {
	VerifySignature(orderID, paymentID, signature string) bool
}

// Handler handles HTTP requests for payment orders and verification
type Handler struct {
	orders      OrderCreator
	verifier    SignatureVerifier
	amountMinor int64
	currency    string
	metrics     *metrics.BookingMetrics
	logger      *logging.Logger
}

// NewHandler creates a new payments handler. The session price is
// server-configured; clients never choose the amount.
func NewHandler(orders OrderCreator, verifier SignatureVerifier, amountMinor int64, currency string, m *metrics.BookingMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		orders:      orders,
		verifier:    verifier,
		amountMinor: amountMinor,
		currency:    currency,
		metrics:     m,
		logger:      logger,
	}
}

// CreateOrder handles POST /api/payments/order requests
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.CreateOrder(r.Context(), h.amountMinor, h.currency)
	if err != nil {
		h.metrics.ObservePaymentOrder("failed")
		h.logger.Error("failed to create payment order", "error", err)
		http.Error(w, "Failed to create order", http.StatusBadGateway)
		return
	}
	h.metrics.ObservePaymentOrder("created")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(order)
}

// VerifyRequest carries the provider's completion callback fields.
type VerifyRequest struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

// VerifyResponse reports the verification outcome
type VerifyResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Verify handles POST /api/payments/verify requests
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if !h.verifier.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		// Treated as a security event: someone claimed a completion the
		// provider never signed.
		h.metrics.ObserveVerificationFailure()
		h.logger.Warn("payment signature verification failed",
			"order_id", req.OrderID,
			"payment_id", req.PaymentID,
		)
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(VerifyResponse{Success: false, Error: "Invalid signature"})
		return
	}

	json.NewEncoder(w).Encode(VerifyResponse{Success: true, Message: "Payment verified successfully"})
}
