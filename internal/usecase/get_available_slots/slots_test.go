package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	"github.com/m04kA/SMC-FacilityService/pkg/types"
)

func hours(start, end string) domain.OperatingHours {
	return domain.OperatingHours{
		Start: types.TimeString(start),
		End:   types.TimeString(end),
	}
}

func TestBuildSlotGrid_NoBookings(t *testing.T) {
	slots := buildSlotGrid(hours("09:00", "13:00"), nil)

	require.Len(t, slots, 4)
	assert.Equal(t, types.TimeString("09:00"), slots[0].StartTime)
	assert.Equal(t, types.TimeString("12:00"), slots[3].StartTime)
	for _, s := range slots {
		assert.True(t, s.Available)
		assert.Equal(t, domain.SlotStepMinutes, s.DurationMinutes)
	}
}

func TestBuildSlotGrid_BookingMarksSlotsTaken(t *testing.T) {
	date, _ := time.Parse(domain.DateFormat, "2026-03-15")
	bookings := []*domain.Booking{{
		BookingDate:   date,
		StartTime:     types.TimeString("10:00"),
		DurationHours: 2,
		Status:        domain.StatusConfirmed,
	}}

	slots := buildSlotGrid(hours("09:00", "13:00"), bookings)
	require.Len(t, slots, 4)

	assert.True(t, slots[0].Available)  // 09:00-10:00
	assert.False(t, slots[1].Available) // 10:00-11:00
	assert.False(t, slots[2].Available) // 11:00-12:00
	assert.True(t, slots[3].Available)  // 12:00-13:00, касание границы не пересечение
}

func TestBuildSlotGrid_CancelledBookingIgnored(t *testing.T) {
	bookings := []*domain.Booking{{
		StartTime:     types.TimeString("10:00"),
		DurationHours: 4,
		Status:        domain.StatusCancelled,
	}}

	slots := buildSlotGrid(hours("09:00", "13:00"), bookings)
	for _, s := range slots {
		assert.True(t, s.Available)
	}
}

func TestBuildSlotGrid_PartialLastHourExcluded(t *testing.T) {
	// Окно 09:00-12:30: последний неполный слот не попадает в сетку
	slots := buildSlotGrid(hours("09:00", "12:30"), nil)

	require.Len(t, slots, 3)
	assert.Equal(t, types.TimeString("11:00"), slots[2].StartTime)
}

func TestBuildSlotGrid_FullDayWindow(t *testing.T) {
	slots := buildSlotGrid(hours("00:00", "24:00"), nil)
	assert.Len(t, slots, 24)
}
