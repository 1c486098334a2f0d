package list_states

import (
	"net/http"

	"github.com/m04kA/SMC-FacilityService/internal/api/handlers"
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

// Handle GET /api/v1/states
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /states - Failed to list states: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /states - Listed %d states", result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
