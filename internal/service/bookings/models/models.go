package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserEmail  string `json:"userEmail"`
	ActorEmail string `json:"-"`
}

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	ActorEmail         string `json:"-"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateBookingRequest запрос на частичное обновление бронирования
// totalAmount НЕ пересчитывается при изменении durationHours (см. DESIGN.md)
type UpdateBookingRequest struct {
	ActorEmail    string   `json:"-"`
	DurationHours *int     `json:"durationHours,omitempty"`
	Attendees     *int     `json:"attendees,omitempty"`
	UserPhone     *string  `json:"userPhone,omitempty"`
	Purpose       *string  `json:"purpose,omitempty"`
	Equipment     []string `json:"equipment,omitempty"`
}

// ToDomainPatch конвертирует request в domain patch
func (r *UpdateBookingRequest) ToDomainPatch() domain.BookingPatch {
	return domain.BookingPatch{
		DurationHours: r.DurationHours,
		Attendees:     r.Attendees,
		UserPhone:     r.UserPhone,
		Purpose:       r.Purpose,
		Equipment:     r.Equipment,
	}
}

// UpdateStatusRequest запрос на обновление статуса бронирования (администратор)
type UpdateStatusRequest struct {
	ActorEmail string `json:"-"`
	Status     string `json:"status"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64    `json:"id"`
	Reference     string   `json:"reference"`
	FacilityID    int64    `json:"facilityId"`
	FacilityName  string   `json:"facilityName"`
	UserEmail     string   `json:"userEmail"`
	UserName      string   `json:"userName"`
	UserPhone     string   `json:"userPhone"`
	BookingDate   string   `json:"bookingDate"` // "2025-10-15"
	StartTime     string   `json:"startTime"`   // "10:00"
	DurationHours int      `json:"durationHours"`
	Attendees     int      `json:"attendees"`
	Purpose       string   `json:"purpose"`
	Equipment     []string `json:"equipment"`
	TotalAmount   float64  `json:"totalAmount"`
	Status        string   `json:"status"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GroupedBookingsResponse бронирования пользователя, разбитые на группы
// Группировка вычисляется на чтении: статус completed системой не записывается
type GroupedBookingsResponse struct {
	Upcoming  []BookingResponse `json:"upcoming"`
	Past      []BookingResponse `json:"past"`
	Cancelled []BookingResponse `json:"cancelled"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		Reference:          b.Reference,
		FacilityID:         b.FacilityID,
		FacilityName:       b.FacilityName,
		UserEmail:          b.UserEmail,
		UserName:           b.UserName,
		UserPhone:          b.UserPhone,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		StartTime:          b.StartTime.String(),
		DurationHours:      b.DurationHours,
		Attendees:          b.Attendees,
		Purpose:            b.Purpose,
		Equipment:          b.Equipment,
		TotalAmount:        b.TotalAmount,
		Status:             string(b.Status),
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if resp.Equipment == nil {
		resp.Equipment = []string{}
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) []BookingResponse {
	result := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		if resp := FromDomainBooking(b); resp != nil {
			result = append(result, *resp)
		}
	}
	return result
}

// FromDomainGroups конвертирует группы бронирований в DTO
func FromDomainGroups(groups domain.BookingGroups) *GroupedBookingsResponse {
	return &GroupedBookingsResponse{
		Upcoming:  FromDomainBookingList(groups.Upcoming),
		Past:      FromDomainBookingList(groups.Past),
		Cancelled: FromDomainBookingList(groups.Cancelled),
	}
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !domain.IsValidBookingStatus(s) {
		return "", ErrInvalidStatus
	}
	return s, nil
}
