package create_booking

import (
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	"github.com/m04kA/SMC-FacilityService/pkg/types"
)

// CreateBookingRequest запрос на создание бронирования
type CreateBookingRequest struct {
	FacilityID    int64    `json:"facilityId"`
	BookingDate   string   `json:"bookingDate"`
	StartTime     string   `json:"startTime"`
	DurationHours int      `json:"durationHours"`
	Attendees     int      `json:"attendees"`
	Purpose       string   `json:"purpose,omitempty"`
	Equipment     []string `json:"equipment,omitempty"`
	UserName      string   `json:"userName"`
	UserPhone     string   `json:"userPhone,omitempty"`

	// Reference - необязательный ключ идемпотентности. При повторной отправке
	// запроса с тем же reference возвращается уже созданное бронирование
	Reference string `json:"reference,omitempty"`

	UserEmail string `json:"-"`
}

// CreateBookingResponse ответ с данными созданного бронирования
type CreateBookingResponse struct {
	ID            int64    `json:"id"`
	Reference     string   `json:"reference"`
	FacilityID    int64    `json:"facilityId"`
	FacilityName  string   `json:"facilityName"`
	UserEmail     string   `json:"userEmail"`
	UserName      string   `json:"userName"`
	UserPhone     string   `json:"userPhone,omitempty"`
	BookingDate   string   `json:"bookingDate"`
	StartTime     string   `json:"startTime"`
	EndTime       string   `json:"endTime"`
	DurationHours int      `json:"durationHours"`
	Attendees     int      `json:"attendees"`
	Purpose       string   `json:"purpose,omitempty"`
	Equipment     []string `json:"equipment"`
	TotalAmount   float64  `json:"totalAmount"`
	Status        string   `json:"status"`
	CreatedAt     string   `json:"createdAt"`
}

// FromDomainBooking преобразует доменную модель в ответ
func FromDomainBooking(b *domain.Booking) *CreateBookingResponse {
	equipment := b.Equipment
	if equipment == nil {
		equipment = []string{}
	}

	endTime, _ := b.EndTime()

	return &CreateBookingResponse{
		ID:            b.ID,
		Reference:     b.Reference,
		FacilityID:    b.FacilityID,
		FacilityName:  b.FacilityName,
		UserEmail:     b.UserEmail,
		UserName:      b.UserName,
		UserPhone:     b.UserPhone,
		BookingDate:   b.BookingDate.Format(domain.DateFormat),
		StartTime:     b.StartTime.String(),
		EndTime:       endTime.String(),
		DurationHours: b.DurationHours,
		Attendees:     b.Attendees,
		Purpose:       b.Purpose,
		Equipment:     equipment,
		TotalAmount:   b.TotalAmount,
		Status:        string(b.Status),
		CreatedAt:     b.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// parsedRequest провалидированные и разобранные поля запроса
type parsedRequest struct {
	bookingDate time.Time
	startTime   types.TimeString
	endTime     types.TimeString
}
