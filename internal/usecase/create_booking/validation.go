package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	"github.com/m04kA/SMC-FacilityService/pkg/types"
)

// validateRequest проверяет обязательные поля и разбирает дату/время
func validateRequest(req *CreateBookingRequest, now time.Time) (*parsedRequest, error) {
	if req.FacilityID <= 0 {
		return nil, fmt.Errorf("%w: facilityId is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.UserEmail) == "" {
		return nil, fmt.Errorf("%w: user email is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.UserName) == "" {
		return nil, fmt.Errorf("%w: userName is required", ErrInvalidInput)
	}

	if req.DurationHours < domain.MinBookingDurationHours || req.DurationHours > domain.MaxBookingDurationHours {
		return nil, fmt.Errorf("%w: durationHours must be between %d and %d",
			ErrInvalidInput, domain.MinBookingDurationHours, domain.MaxBookingDurationHours)
	}

	if req.Attendees < domain.MinAttendees {
		return nil, fmt.Errorf("%w: attendees must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Purpose) == "" {
		return nil, fmt.Errorf("%w: purpose is required", ErrInvalidInput)
	}

	if len(req.Purpose) > domain.MaxPurposeLength {
		return nil, fmt.Errorf("%w: purpose must be at most %d characters", ErrInvalidInput, domain.MaxPurposeLength)
	}

	bookingDate, err := time.Parse(domain.DateFormat, req.BookingDate)
	if err != nil {
		return nil, fmt.Errorf("%w: bookingDate must be in YYYY-MM-DD format", ErrInvalidInput)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if bookingDate.Before(today) {
		return nil, fmt.Errorf("%w: bookingDate must not be in the past", ErrInvalidInput)
	}

	startTime, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: startTime must be in HH:MM format", ErrInvalidInput)
	}

	endTime, err := startTime.AddMinutes(req.DurationHours * 60)
	if err != nil {
		return nil, fmt.Errorf("%w: booking must end within the same day", ErrInvalidInput)
	}

	return &parsedRequest{
		bookingDate: bookingDate,
		startTime:   startTime,
		endTime:     endTime,
	}, nil
}
