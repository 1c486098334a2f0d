package update_state

import (
	"context"

	"github.com/m04kA/SMC-FacilityService/internal/service/locations/models"
)

type LocationService interface {
	Update(ctx context.Context, id int64, req *models.UpdateStateRequest) (*models.StateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
