package create_facility

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FacilityService/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityService/internal/api/middleware"
	"github.com/m04kA/SMC-FacilityService/internal/service/facilities"
	"github.com/m04kA/SMC-FacilityService/internal/service/facilities/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserEmail   = "отсутствует email пользователя"
	msgUserNotFound       = "пользователь не найден"
	msgForbidden          = "доступ запрещен"
	msgInvalidInput       = "некорректные данные площадки"
)

type Handler struct {
	service FacilityService
	logger  Logger
}

func NewHandler(service FacilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/facilities
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userEmail, ok := middleware.GetUserEmail(r.Context())
	if !ok {
		h.logger.Warn("POST /facilities - Missing user email")
		handlers.RespondUnauthorized(w, msgMissingUserEmail)
		return
	}

	var req models.CreateFacilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /facilities - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.ActorEmail = userEmail

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, facilities.ErrUserNotFound):
			h.logger.Warn("POST /facilities - User not found: email=%s", userEmail)
			handlers.RespondUnauthorized(w, msgUserNotFound)

		case errors.Is(err, facilities.ErrAccessDenied):
			h.logger.Warn("POST /facilities - Access denied: email=%s", userEmail)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, facilities.ErrInvalidInput):
			h.logger.Warn("POST /facilities - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /facilities - Failed to create facility: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /facilities - Facility created successfully: facility_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
