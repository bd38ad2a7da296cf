package blocking

import "errors"

var (
	// ErrInvalidDate is returned when the date is missing or not YYYY-MM-DD
	ErrInvalidDate = errors.New("date must be a valid YYYY-MM-DD date")

	// ErrInvalidSlot is returned when the time is not a catalog slot
	ErrInvalidSlot = errors.New("time must be one of the daily session slots")

	// ErrAlreadyBlocked is returned when the (date, time) pair already has a
	// block. The storage uniqueness constraint is the authoritative source.
	ErrAlreadyBlocked = errors.New("slot is already blocked")

	// ErrBlockNotFound is returned when removing a block that does not exist
	ErrBlockNotFound = errors.New("blocked slot not found")
)
