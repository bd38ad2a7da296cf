package availability

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rkaushal27/stargaze-booking/internal/slots"
	"github.com/rkaushal27/stargaze-booking/pkg/logging"
)

// Handler handles HTTP requests for slot availability
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a new availability handler
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

// UnavailableSlotsResponse is the response for an availability query
type UnavailableSlotsResponse struct {
	UnavailableTimes []slots.Label `json:"unavailableTimes"`
}

// GetUnavailableSlots handles GET /api/available-slots?date=YYYY-MM-DD
func (h *Handler) GetUnavailableSlots(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		http.Error(w, "Date is required", http.StatusBadRequest)
		return
	}

	unavailable, err := h.service.UnavailableSlots(r.Context(), date)
	if err != nil {
		if errors.Is(err, ErrInvalidDate) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to resolve availability", "error", err, "date", date)
		http.Error(w, "Failed to fetch available slots", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(UnavailableSlotsResponse{UnavailableTimes: unavailable})
}
