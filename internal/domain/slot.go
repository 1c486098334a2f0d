package domain

import "github.com/m04kA/SMC-FacilityService/pkg/types"

// AvailableSlot represents one cell of the daily availability grid
type AvailableSlot struct {
	StartTime       types.TimeString
	DurationMinutes int
	Available       bool
}
