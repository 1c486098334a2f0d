package domain

import (
	"time"

	"github.com/m04kA/SMC-FacilityService/pkg/types"
)

// FacilityCategory represents the kind of bookable space
type FacilityCategory string

const (
	CategoryMeetingRoom    FacilityCategory = "meeting-room"
	CategoryTrainingRoom   FacilityCategory = "training-room"
	CategoryConferenceHall FacilityCategory = "conference-hall"
	CategoryEventHall      FacilityCategory = "event-hall"
	CategoryAuditorium     FacilityCategory = "auditorium"
)

// FacilityStatus represents the administered availability state of a facility
type FacilityStatus string

const (
	FacilityAvailable FacilityStatus = "available"
	FacilityLimited   FacilityStatus = "limited"
	FacilityBooked    FacilityStatus = "booked"
)

// Capacity allowed attendee range for a facility
type Capacity struct {
	Min int
	Max int
}

// Pricing facility price list; all values are non-negative
type Pricing struct {
	Hourly  float64
	HalfDay float64
	FullDay float64
}

// OperatingHours daily window within which all bookings must fall
type OperatingHours struct {
	Start types.TimeString
	End   types.TimeString
}

// Contains returns true if the [start, end) interval fits inside the window
func (h OperatingHours) Contains(start, end types.TimeString) bool {
	return !start.IsBefore(h.Start) && !end.IsAfter(h.End)
}

// Facility represents a bookable physical space
type Facility struct {
	ID          int64
	Name        string
	Description string
	Category    FacilityCategory
	Location    string // Здание/этаж, например "Building A, Floor 3"
	City        string
	State       string

	Capacity       Capacity
	Pricing        Pricing
	OperatingHours OperatingHours
	Amenities      []string

	Status FacilityStatus
	Rating float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanAccommodate returns true if the facility fits the given attendee count
func (f *Facility) CanAccommodate(attendees int) bool {
	return attendees <= f.Capacity.Max
}

// FacilityFilter composable AND-filter for catalog listing
// Amenities requires the facility to have ALL listed amenities;
// Search matches case-insensitively against name, description, location,
// city and state (OR across fields)
type FacilityFilter struct {
	Category    *FacilityCategory
	MinCapacity *int
	MaxPrice    *float64
	Status      *FacilityStatus
	Amenities   []string
	Search      *string
}

// IsEmpty returns true if no filter field is set
func (f FacilityFilter) IsEmpty() bool {
	return f.Category == nil && f.MinCapacity == nil && f.MaxPrice == nil &&
		f.Status == nil && len(f.Amenities) == 0 && f.Search == nil
}

// FacilitySort presentation-layer ordering over catalog results
type FacilitySort string

const (
	SortNameAsc      FacilitySort = "name_asc"
	SortNameDesc     FacilitySort = "name_desc"
	SortPriceAsc     FacilitySort = "price_asc"
	SortPriceDesc    FacilitySort = "price_desc"
	SortRatingDesc   FacilitySort = "rating_desc"
	SortCapacityDesc FacilitySort = "capacity_desc"
)

// FacilityPatch данные для обновления площадки администратором
// Nil-поля не изменяются
type FacilityPatch struct {
	Name           *string
	Description    *string
	Category       *FacilityCategory
	Location       *string
	City           *string
	State          *string
	Capacity       *Capacity
	Pricing        *Pricing
	OperatingHours *OperatingHours
	Amenities      []string
	Status         *FacilityStatus
	Rating         *float64
}
