package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FacilityService/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-FacilityService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgMissingUserEmail      = "отсутствует email пользователя"
	msgFacilityNotFound      = "площадка не найдена"
	msgSlotNotAvailable      = "выбранный временной интервал уже занят"
	msgCapacityExceeded      = "число участников превышает вместимость площадки"
	msgOutsideOperatingHours = "интервал выходит за часы работы площадки"
	msgInvalidInput          = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userEmail, ok := middleware.GetUserEmail(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user email")
		handlers.RespondUnauthorized(w, msgMissingUserEmail)
		return
	}

	var req createBooking.CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserEmail = userEmail

	result, err := h.useCase.Execute(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrFacilityNotFound):
			h.logger.Warn("POST /bookings - Facility not found: facility_id=%d", req.FacilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: facility_id=%d, date=%s, start=%s",
				req.FacilityID, req.BookingDate, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrCapacityExceeded):
			h.logger.Warn("POST /bookings - Capacity exceeded: facility_id=%d, attendees=%d",
				req.FacilityID, req.Attendees)
			handlers.RespondBadRequest(w, msgCapacityExceeded)

		case errors.Is(err, createBooking.ErrOutsideOperatingHours):
			h.logger.Warn("POST /bookings - Outside operating hours: facility_id=%d, start=%s",
				req.FacilityID, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideOperatingHours)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: facility_id=%d, user=%s, error=%v",
				req.FacilityID, userEmail, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, reference=%s, facility_id=%d",
		result.ID, result.Reference, req.FacilityID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
