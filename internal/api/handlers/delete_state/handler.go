package delete_state

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FacilityService/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityService/internal/api/middleware"
	"github.com/m04kA/SMC-FacilityService/internal/service/locations"
)

const (
	msgInvalidStateID   = "некорректный ID региона"
	msgMissingUserEmail = "отсутствует email пользователя"
	msgUserNotFound     = "пользователь не найден"
	msgForbidden        = "доступ запрещен"
	msgNotFound         = "регион не найден"
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

// Handle DELETE /api/v1/states/{stateId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	stateID, err := strconv.ParseInt(vars["stateId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /states/{id} - Invalid state ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStateID)
		return
	}

	userEmail, ok := middleware.GetUserEmail(r.Context())
	if !ok {
		h.logger.Warn("DELETE /states/{id} - Missing user email")
		handlers.RespondUnauthorized(w, msgMissingUserEmail)
		return
	}

	if err := h.service.Delete(r.Context(), stateID, userEmail); err != nil {
		switch {
		case errors.Is(err, locations.ErrStateNotFound):
			h.logger.Warn("DELETE /states/{id} - State not found: state_id=%d", stateID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, locations.ErrUserNotFound):
			h.logger.Warn("DELETE /states/{id} - User not found: email=%s", userEmail)
			handlers.RespondUnauthorized(w, msgUserNotFound)

		case errors.Is(err, locations.ErrAccessDenied):
			h.logger.Warn("DELETE /states/{id} - Access denied: email=%s", userEmail)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /states/{id} - Failed to delete state: state_id=%d, error=%v", stateID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /states/{id} - State deleted successfully: state_id=%d", stateID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
