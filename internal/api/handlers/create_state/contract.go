package create_state

import (
	"context"

	"github.com/m04kA/SMC-FacilityService/internal/service/locations/models"
)

type LocationService interface {
	Create(ctx context.Context, req *models.CreateStateRequest) (*models.StateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
