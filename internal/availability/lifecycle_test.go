package availability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rkaushal27/stargaze-booking/internal/appointments"
	"github.com/rkaushal27/stargaze-booking/internal/blocking"
)

// Walks a date through the whole availability lifecycle: empty, one
// booking, an admin block, and a conflicting re-book.
func TestAvailabilityLifecycle(t *testing.T) {
	ctx := context.Background()
	apptRepo := appointments.NewInMemoryRepository()
	blockRepo := blocking.NewInMemoryRepository()
	svc := NewService(apptRepo, blockRepo)

	const date = "2025-07-15"

	unavailable, err := svc.UnavailableSlots(ctx, date)
	require.NoError(t, err)
	assert.Empty(t, unavailable, "fresh date must have no unavailable slots")

	_, err = apptRepo.Create(ctx, &appointments.CreateAppointmentRequest{
		Name: "Asha", Email: "asha@example.com", Phone: "+919800000001",
		Date: date, Slot: "10:00",
	})
	require.NoError(t, err)

	unavailable, err = svc.UnavailableSlots(ctx, date)
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00"}, unavailable)

	_, err = blockRepo.Create(ctx, date, "18:00", "telescope maintenance")
	require.NoError(t, err)

	unavailable, err = svc.UnavailableSlots(ctx, date)
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "18:00"}, unavailable, "union must stay in catalog order")

	// A second booking for the same slot must conflict, never overwrite.
	_, err = apptRepo.Create(ctx, &appointments.CreateAppointmentRequest{
		Name: "Vik", Email: "vik@example.com", Phone: "+919800000002",
		Date: date, Slot: "10:00",
	})
	require.ErrorIs(t, err, appointments.ErrSlotTaken)

	appts, err := apptRepo.ListByDate(ctx, date)
	require.NoError(t, err)
	require.Len(t, appts, 1)
	assert.Equal(t, "Asha", appts[0].Name)
}
