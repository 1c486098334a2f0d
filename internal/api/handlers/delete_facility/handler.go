package delete_facility

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FacilityService/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityService/internal/api/middleware"
	"github.com/m04kA/SMC-FacilityService/internal/service/facilities"
)

const (
	msgInvalidFacilityID = "некорректный ID площадки"
	msgMissingUserEmail  = "отсутствует email пользователя"
	msgUserNotFound      = "пользователь не найден"
	msgForbidden         = "доступ запрещен"
	msgNotFound          = "площадка не найдена"
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

// Handle DELETE /api/v1/facilities/{facilityId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	facilityID, err := strconv.ParseInt(vars["facilityId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /facilities/{id} - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	userEmail, ok := middleware.GetUserEmail(r.Context())
	if !ok {
		h.logger.Warn("DELETE /facilities/{id} - Missing user email")
		handlers.RespondUnauthorized(w, msgMissingUserEmail)
		return
	}

	if err := h.service.Delete(r.Context(), facilityID, userEmail); err != nil {
		switch {
		case errors.Is(err, facilities.ErrFacilityNotFound):
			h.logger.Warn("DELETE /facilities/{id} - Facility not found: facility_id=%d", facilityID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, facilities.ErrUserNotFound):
			h.logger.Warn("DELETE /facilities/{id} - User not found: email=%s", userEmail)
			handlers.RespondUnauthorized(w, msgUserNotFound)

		case errors.Is(err, facilities.ErrAccessDenied):
			h.logger.Warn("DELETE /facilities/{id} - Access denied: email=%s", userEmail)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /facilities/{id} - Failed to delete facility: facility_id=%d, error=%v", facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /facilities/{id} - Facility deleted successfully: facility_id=%d", facilityID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
