package blocking

import (
	"time"

	"github.com/rkaushal27/stargaze-booking/internal/slots"
)

// DefaultWholeDayReason is recorded when an admin blocks a full day without
// giving a reason.
const DefaultWholeDayReason = "Whole day blocked"

// BlockedSlot represents an administrator-imposed unavailability for one
// (date, time) pair, independent of any booking.
type BlockedSlot struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Slot      string    `json:"time"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// BlockSlotRequest represents the request body for blocking slots. When
// WholeDay is set the Slot field is ignored and every free catalog slot on
// the date is blocked.
type BlockSlotRequest struct {
	Date     string `json:"date"`
	Slot     string `json:"time"`
	Reason   string `json:"reason"`
	WholeDay bool   `json:"wholeDay"`
}

// Validate validates the block request
func (r *BlockSlotRequest) Validate() error {
	if _, err := slots.ParseDate(r.Date); err != nil {
		return ErrInvalidDate
	}
	if !r.WholeDay && !slots.IsValid(r.Slot) {
		return ErrInvalidSlot
	}
	return nil
}
