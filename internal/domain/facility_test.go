package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityService/pkg/types"
)

func mustTimeString(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func TestOperatingHours_Contains(t *testing.T) {
	hours := OperatingHours{
		Start: mustTimeString(t, "08:00"),
		End:   mustTimeString(t, "22:00"),
	}

	tests := []struct {
		name  string
		start string
		end   string
		want  bool
	}{
		{"внутри окна", "10:00", "12:00", true},
		{"точно по границам", "08:00", "22:00", true},
		{"начало раньше открытия", "07:00", "09:00", false},
		{"конец позже закрытия", "21:00", "23:00", false},
		{"полностью вне окна", "22:00", "24:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := mustTimeString(t, tt.start)
			end := mustTimeString(t, tt.end)

			assert.Equal(t, tt.want, hours.Contains(start, end))
		})
	}
}

func TestFacility_CanAccommodate(t *testing.T) {
	f := &Facility{Capacity: Capacity{Min: 5, Max: 50}}

	assert.True(t, f.CanAccommodate(50))
	assert.True(t, f.CanAccommodate(1))
	assert.False(t, f.CanAccommodate(51))
}

func TestFacilityFilter_IsEmpty(t *testing.T) {
	assert.True(t, FacilityFilter{}.IsEmpty())

	category := CategoryMeetingRoom
	assert.False(t, FacilityFilter{Category: &category}.IsEmpty())
	assert.False(t, FacilityFilter{Amenities: []string{"wifi"}}.IsEmpty())
}
