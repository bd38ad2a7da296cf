package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rkaushal27/stargaze-booking/pkg/logging"
)

type fakeOrderCreator struct {
	order *Order
	err   error
}

func (f *fakeOrderCreator) CreateOrder(ctx context.Context, amountMinor int64, currency string) (*Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	o := *f.order
	o.Amount = amountMinor
	o.Currency = currency
	return &o, nil
}

type fakeVerifier struct{ valid bool }

func (f *fakeVerifier) VerifySignature(orderID, paymentID, signature string) bool { return f.valid }

func TestCreateOrderHandler(t *testing.T) {
	handler := NewHandler(&fakeOrderCreator{order: &Order{ID: "order_9"}}, &fakeVerifier{}, 50000, "INR", nil, logging.Default())

	req := httptest.NewRequest(http.MethodPost, "/api/payments/order", nil)
	w := httptest.NewRecorder()
	handler.CreateOrder(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var order Order
	if err := json.NewDecoder(w.Body).Decode(&order); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if order.ID != "order_9" || order.Amount != 50000 || order.Currency != "INR" {
		t.Fatalf("unexpected order %+v", order)
	}
}

func TestCreateOrderHandlerUpstreamFailure(t *testing.T) {
	handler := NewHandler(&fakeOrderCreator{err: ErrProvider}, &fakeVerifier{}, 50000, "INR", nil, logging.Default())

	req := httptest.NewRequest(http.MethodPost, "/api/payments/order", nil)
	w := httptest.NewRecorder()
	handler.CreateOrder(w, req)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
}

func TestVerifyHandler(t *testing.T) {
	tests := []struct {
		name        string
		valid       bool
		wantCode    int
		wantSuccess bool
	}{
		{"valid signature", true, http.StatusOK, true},
		{"invalid signature", false, http.StatusBadRequest, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHandler(&fakeOrderCreator{order: &Order{ID: "o"}}, &fakeVerifier{valid: tt.valid}, 50000, "INR", nil, logging.Default())

			body, _ := json.Marshal(VerifyRequest{OrderID: "order_9", PaymentID: "pay_3", Signature: "sig"})
			req := httptest.NewRequest(http.MethodPost, "/api/payments/verify", bytes.NewReader(body))
			w := httptest.NewRecorder()
			handler.Verify(w, req)

			if w.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, w.Code)
			}
			var resp VerifyResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Success != tt.wantSuccess {
				t.Fatalf("expected success=%v, got %v", tt.wantSuccess, resp.Success)
			}
		})
	}
}
