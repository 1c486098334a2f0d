package get_user_bookings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FacilityService/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityService/internal/api/middleware"
	"github.com/m04kA/SMC-FacilityService/internal/service/bookings"
	"github.com/m04kA/SMC-FacilityService/internal/service/bookings/models"
)

const (
	msgMissingEmail     = "отсутствует email пользователя в пути"
	msgMissingUserEmail = "отсутствует email пользователя"
	msgForbidden        = "доступ запрещен"
	msgUserNotFound     = "пользователь не найден"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{email}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	targetEmail := vars["email"]
	if targetEmail == "" {
		h.logger.Warn("GET /users/{email}/bookings - Missing email in path")
		handlers.RespondBadRequest(w, msgMissingEmail)
		return
	}

	actorEmail, ok := middleware.GetUserEmail(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{email}/bookings - Missing user email")
		handlers.RespondUnauthorized(w, msgMissingUserEmail)
		return
	}

	result, err := h.service.GetUserBookings(r.Context(), &models.GetUserBookingsRequest{
		UserEmail:  targetEmail,
		ActorEmail: actorEmail,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrUserNotFound):
			h.logger.Warn("GET /users/{email}/bookings - User not found: email=%s", actorEmail)
			handlers.RespondUnauthorized(w, msgUserNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /users/{email}/bookings - Access denied: actor=%s, target=%s",
				actorEmail, targetEmail)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /users/{email}/bookings - Failed to get bookings: email=%s, error=%v",
				targetEmail, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/{email}/bookings - Bookings retrieved successfully: email=%s", targetEmail)
	handlers.RespondJSON(w, http.StatusOK, result)
}
