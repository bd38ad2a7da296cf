package appointments

import (
	"strings"
	"time"

	"github.com/rkaushal27/stargaze-booking/internal/slots"
)

// Appointment represents a confirmed, paid session booking. Rows are never
// mutated after creation.
type Appointment struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Date      string    `json:"date"`
	Slot      string    `json:"time"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateAppointmentRequest represents the request body for creating an appointment
type CreateAppointmentRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Date  string `json:"date"`
	Slot  string `json:"time"`
	Notes string `json:"notes"`
}

// Validate validates the create appointment request
func (r *CreateAppointmentRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrInvalidName
	}
	if strings.TrimSpace(r.Email) == "" {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(r.Phone) == "" {
		return ErrInvalidPhone
	}
	if _, err := slots.ParseDate(r.Date); err != nil {
		return ErrInvalidDate
	}
	if !slots.IsValid(r.Slot) {
		return ErrInvalidSlot
	}
	return nil
}
