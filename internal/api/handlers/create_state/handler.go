package create_state

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FacilityService/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityService/internal/api/middleware"
	"github.com/m04kA/SMC-FacilityService/internal/service/locations"
	"github.com/m04kA/SMC-FacilityService/internal/service/locations/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserEmail   = "отсутствует email пользователя"
	msgUserNotFound       = "пользователь не найден"
	msgForbidden          = "доступ запрещен"
	msgDuplicateCode      = "регион с таким кодом уже существует"
	msgInvalidInput       = "некорректные данные региона"
)

type Handler struct {
	service LocationService
	logger  Logger
}

func NewHandler(service LocationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/states
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userEmail, ok := middleware.GetUserEmail(r.Context())
	if !ok {
		h.logger.Warn("POST /states - Missing user email")
		handlers.RespondUnauthorized(w, msgMissingUserEmail)
		return
	}

	var req models.CreateStateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /states - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.ActorEmail = userEmail

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, locations.ErrUserNotFound):
			h.logger.Warn("POST /states - User not found: email=%s", userEmail)
			handlers.RespondUnauthorized(w, msgUserNotFound)

		case errors.Is(err, locations.ErrAccessDenied):
			h.logger.Warn("POST /states - Access denied: email=%s", userEmail)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, locations.ErrDuplicateCode):
			h.logger.Warn("POST /states - Duplicate code: %s", req.Code)
			handlers.RespondConflict(w, msgDuplicateCode)

		case errors.Is(err, locations.ErrInvalidInput):
			h.logger.Warn("POST /states - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /states - Failed to create state: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /states - State created successfully: state_id=%d, code=%s", result.ID, result.Code)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
