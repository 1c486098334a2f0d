package domain

import (
	"time"

	"github.com/m04kA/SMC-FacilityService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a facility reservation in the system
type Booking struct {
	ID         int64
	Reference  string // Клиентский идемпотентный ключ или сгенерированный UUID
	FacilityID int64
	UserEmail  string
	UserName   string
	UserPhone  string

	BookingDate   time.Time
	StartTime     types.TimeString
	DurationHours int
	Attendees     int

	Purpose   string
	Equipment []string

	// Denormalized data for history: survives facility deletion
	FacilityName string
	TotalAmount  float64

	Status BookingStatus

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking status allows cancellation
// The 24-hour notice window is checked separately against the clock
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// CanBeUpdated returns true if the booking can still be modified
func (b *Booking) CanBeUpdated() bool {
	return b.Status == StatusConfirmed
}

// StartDateTime combines the booking date and start time into a single moment
func (b *Booking) StartDateTime() time.Time {
	minutes := 0
	if m, err := b.StartTime.Minutes(); err == nil {
		minutes = m
	}
	day := b.BookingDate
	return time.Date(day.Year(), day.Month(), day.Day(), 0, minutes, 0, 0, day.Location())
}

// EndTime returns the time the reservation ends
func (b *Booking) EndTime() (types.TimeString, error) {
	return b.StartTime.AddMinutes(b.DurationHours * 60)
}

// IsWithinCancellationWindow returns true if the booking may still be
// cancelled at the given moment: more than CancellationNoticeHours remain
// before the reservation starts
func (b *Booking) IsWithinCancellationWindow(now time.Time) bool {
	return b.StartDateTime().Sub(now) > CancellationNoticeHours*time.Hour
}

// FacilityBookingsFilter фильтр для выборки бронирований площадки
type FacilityBookingsFilter struct {
	FacilityID       int64          // Обязательный параметр
	Date             *time.Time     // Фильтр по дате (опционально)
	Status           *BookingStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool           // Включать ли отменённые бронирования
}

// BookingPatch частичное обновление бронирования
// Nil-поля не изменяются. TotalAmount намеренно не пересчитывается
// при изменении DurationHours (см. DESIGN.md)
type BookingPatch struct {
	DurationHours *int
	Attendees     *int
	UserPhone     *string
	Purpose       *string
	Equipment     []string
}

// IsEmpty returns true if the patch changes nothing
func (p *BookingPatch) IsEmpty() bool {
	return p.DurationHours == nil && p.Attendees == nil &&
		p.UserPhone == nil && p.Purpose == nil && p.Equipment == nil
}
