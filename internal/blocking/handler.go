package blocking

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rkaushal27/stargaze-booking/pkg/logging"
)

// Handler handles admin HTTP requests for blocked slots
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a new blocking handler
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

// BlockWholeDayResponse is the response for a whole-day block request
type BlockWholeDayResponse struct {
	Date         string `json:"date"`
	BlockedCount int    `json:"blockedCount"`
	Reason       string `json:"reason"`
}

// Create handles POST /admin/blocked-slots requests, including the
// wholeDay variant used by the dashboard.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req BlockSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if req.WholeDay {
		count, err := h.service.BlockWholeDay(r.Context(), req.Date, req.Reason)
		if err != nil {
			h.writeError(w, err)
			return
		}
		reason := req.Reason
		if reason == "" {
			reason = DefaultWholeDayReason
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(BlockWholeDayResponse{
			Date:         req.Date,
			BlockedCount: count,
			Reason:       reason,
		})
		return
	}

	block, err := h.service.BlockSlot(r.Context(), req.Date, req.Slot, req.Reason)
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(block)
}

// List handles GET /admin/blocked-slots requests, optionally filtered by
// ?date=YYYY-MM-DD.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var (
		blocks []*BlockedSlot
		err    error
	)
	if date := r.URL.Query().Get("date"); date != "" {
		blocks, err = h.service.ListBlockedByDate(r.Context(), date)
	} else {
		blocks, err = h.service.ListBlocked(r.Context())
	}
	if err != nil {
		h.writeError(w, err)
		return
	}
	if blocks == nil {
		blocks = []*BlockedSlot{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(blocks)
}

// Delete handles DELETE /admin/blocked-slots/{id} requests
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "missing block id", http.StatusBadRequest)
		return
	}

	if err := h.service.RemoveBlock(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidDate), errors.Is(err, ErrInvalidSlot):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrAlreadyBlocked):
		http.Error(w, "This time slot is already blocked", http.StatusConflict)
	case errors.Is(err, ErrBlockNotFound):
		http.Error(w, "Blocked slot not found", http.StatusNotFound)
	default:
		h.logger.Error("blocked-slots request failed", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
