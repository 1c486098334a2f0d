package list_states

import (
	"context"

	"github.com/m04kA/SMC-FacilityService/internal/service/locations/models"
)

type LocationService interface {
	List(ctx context.Context) (*models.StateListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
