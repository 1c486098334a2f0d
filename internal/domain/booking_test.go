package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityService/pkg/types"
)

func TestBooking_IsWithinCancellationWindow(t *testing.T) {
	booking := &Booking{
		BookingDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:   types.TimeString("14:00"),
		Status:      StatusConfirmed,
	}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{
			name: "two days before",
			now:  time.Date(2026, 3, 8, 14, 0, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "just over 24 hours before",
			now:  time.Date(2026, 3, 9, 13, 59, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "exactly 24 hours before",
			now:  time.Date(2026, 3, 9, 14, 0, 0, 0, time.UTC),
			want: false,
		},
		{
			name: "same day",
			now:  time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
			want: false,
		},
		{
			name: "after start",
			now:  time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, booking.IsWithinCancellationWindow(tt.now))
		})
	}
}

func TestBooking_StartDateTime(t *testing.T) {
	booking := &Booking{
		BookingDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:   types.TimeString("14:30"),
	}

	assert.Equal(t, time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC), booking.StartDateTime())
}

func TestBooking_EndTime(t *testing.T) {
	booking := &Booking{
		StartTime:     types.TimeString("10:00"),
		DurationHours: 3,
	}

	end, err := booking.EndTime()
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("13:00"), end)
}

func TestBooking_StatusPredicates(t *testing.T) {
	confirmed := &Booking{Status: StatusConfirmed}
	completed := &Booking{Status: StatusCompleted}
	cancelled := &Booking{Status: StatusCancelled}

	assert.True(t, confirmed.CanBeCancelled())
	assert.True(t, confirmed.CanBeUpdated())
	assert.True(t, confirmed.IsActive())

	assert.False(t, completed.CanBeCancelled())
	assert.False(t, completed.CanBeUpdated())
	assert.True(t, completed.IsActive())

	assert.False(t, cancelled.CanBeCancelled())
	assert.True(t, cancelled.IsCancelled())
	assert.False(t, cancelled.IsActive())
}

func TestBookingPatch_IsEmpty(t *testing.T) {
	empty := &BookingPatch{}
	assert.True(t, empty.IsEmpty())

	hours := 2
	assert.False(t, (&BookingPatch{DurationHours: &hours}).IsEmpty())
	assert.False(t, (&BookingPatch{Equipment: []string{}}).IsEmpty())
}
