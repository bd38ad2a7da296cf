package appointments

import "errors"

var (
	// ErrInvalidName is returned when the client name is missing
	ErrInvalidName = errors.New("name is required")

	// ErrInvalidEmail is returned when the client email is missing
	ErrInvalidEmail = errors.New("email is required")

	// ErrInvalidPhone is returned when the client phone is missing
	ErrInvalidPhone = errors.New("phone is required")

	// ErrInvalidDate is returned when the date is missing or not YYYY-MM-DD
	ErrInvalidDate = errors.New("date must be a valid YYYY-MM-DD date")

	// ErrInvalidSlot is returned when the time is not a catalog slot
	ErrInvalidSlot = errors.New("time must be one of the daily session slots")

	// ErrSlotTaken is returned when another appointment already holds the
	// same (date, time) pair. The storage uniqueness constraint is the
	// authoritative source of this error.
	ErrSlotTaken = errors.New("slot is already booked")
)
