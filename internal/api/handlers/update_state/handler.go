package update_state

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FacilityService/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityService/internal/api/middleware"
	"github.com/m04kA/SMC-FacilityService/internal/service/locations"
	"github.com/m04kA/SMC-FacilityService/internal/service/locations/models"
)

const (
	msgInvalidStateID     = "некорректный ID региона"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserEmail   = "отсутствует email пользователя"
	msgUserNotFound       = "пользователь не найден"
	msgForbidden          = "доступ запрещен"
	msgNotFound           = "регион не найден"
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

// Handle PATCH /api/v1/states/{stateId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	stateID, err := strconv.ParseInt(vars["stateId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /states/{id} - Invalid state ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStateID)
		return
	}

	userEmail, ok := middleware.GetUserEmail(r.Context())
	if !ok {
		h.logger.Warn("PATCH /states/{id} - Missing user email")
		handlers.RespondUnauthorized(w, msgMissingUserEmail)
		return
	}

	var req models.UpdateStateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /states/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.ActorEmail = userEmail

	result, err := h.service.Update(r.Context(), stateID, &req)
	if err != nil {
		switch {
		case errors.Is(err, locations.ErrStateNotFound):
			h.logger.Warn("PATCH /states/{id} - State not found: state_id=%d", stateID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, locations.ErrUserNotFound):
			h.logger.Warn("PATCH /states/{id} - User not found: email=%s", userEmail)
			handlers.RespondUnauthorized(w, msgUserNotFound)

		case errors.Is(err, locations.ErrAccessDenied):
			h.logger.Warn("PATCH /states/{id} - Access denied: email=%s", userEmail)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, locations.ErrDuplicateCode):
			h.logger.Warn("PATCH /states/{id} - Duplicate code: state_id=%d", stateID)
			handlers.RespondConflict(w, msgDuplicateCode)

		case errors.Is(err, locations.ErrInvalidInput):
			h.logger.Warn("PATCH /states/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /states/{id} - Failed to update state: state_id=%d, error=%v", stateID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /states/{id} - State updated successfully: state_id=%d", stateID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
