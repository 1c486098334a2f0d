package list_facilities

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-FacilityService/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityService/internal/service/facilities"
	"github.com/m04kA/SMC-FacilityService/internal/service/facilities/models"
	"github.com/m04kA/SMC-FacilityService/pkg/ptr"
)

const (
	msgInvalidMinCapacity = "некорректное значение minCapacity"
	msgInvalidMaxPrice    = "некорректное значение maxPrice"
	msgInvalidFilter      = "некорректные параметры фильтрации или сортировки"
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

// Handle GET /api/v1/facilities
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := parseQuery(r)
	if err != nil {
		h.logger.Warn("GET /facilities - Invalid query: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, facilities.ErrInvalidInput):
			h.logger.Warn("GET /facilities - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /facilities - Failed to list facilities: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /facilities - Listed %d facilities", len(result.Facilities))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// parseQuery разбирает фильтры каталога из query-параметров
func parseQuery(r *http.Request) (*models.ListFacilitiesRequest, error) {
	q := r.URL.Query()
	req := &models.ListFacilitiesRequest{}

	if v := q.Get("category"); v != "" {
		req.Category = ptr.Ptr(v)
	}

	if v := q.Get("minCapacity"); v != "" {
		minCapacity, err := strconv.Atoi(v)
		if err != nil || minCapacity < 0 {
			return nil, errors.New(msgInvalidMinCapacity)
		}
		req.MinCapacity = ptr.Ptr(minCapacity)
	}

	if v := q.Get("maxPrice"); v != "" {
		maxPrice, err := strconv.ParseFloat(v, 64)
		if err != nil || maxPrice < 0 {
			return nil, errors.New(msgInvalidMaxPrice)
		}
		req.MaxPrice = ptr.Ptr(maxPrice)
	}

	if v := q.Get("status"); v != "" {
		req.Status = ptr.Ptr(v)
	}

	if v := q.Get("amenities"); v != "" {
		req.Amenities = strings.Split(v, ",")
	}

	if v := q.Get("search"); v != "" {
		req.Search = ptr.Ptr(v)
	}

	if v := q.Get("sortBy"); v != "" {
		req.SortBy = ptr.Ptr(v)
	}

	return req, nil
}
