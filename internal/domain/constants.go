package domain

// Business rule constants
const (
	// CancellationNoticeHours бронирование можно отменить не позднее,
	// чем за указанное число часов до начала
	CancellationNoticeHours = 24

	MinBookingDurationHours = 1
	MaxBookingDurationHours = 12

	MinAttendees = 1

	// SlotStepMinutes шаг сетки слотов для календаря доступности
	SlotStepMinutes = 60

	MaxStateCodeLength = 2

	MaxPurposeLength            = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ValidBookingStatuses все допустимые статусы бронирования
var ValidBookingStatuses = []BookingStatus{
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
}

// ValidFacilityCategories все допустимые категории площадок
var ValidFacilityCategories = []FacilityCategory{
	CategoryMeetingRoom,
	CategoryTrainingRoom,
	CategoryConferenceHall,
	CategoryEventHall,
	CategoryAuditorium,
}

// ValidFacilityStatuses все допустимые статусы площадок
var ValidFacilityStatuses = []FacilityStatus{
	FacilityAvailable,
	FacilityLimited,
	FacilityBooked,
}

// IsValidBookingStatus returns true if the status is one of the known values
func IsValidBookingStatus(s BookingStatus) bool {
	for _, valid := range ValidBookingStatuses {
		if s == valid {
			return true
		}
	}
	return false
}

// IsValidFacilityCategory returns true if the category is one of the known values
func IsValidFacilityCategory(c FacilityCategory) bool {
	for _, valid := range ValidFacilityCategories {
		if c == valid {
			return true
		}
	}
	return false
}

// IsValidFacilityStatus returns true if the status is one of the known values
func IsValidFacilityStatus(s FacilityStatus) bool {
	for _, valid := range ValidFacilityStatuses {
		if s == valid {
			return true
		}
	}
	return false
}
