package facilities

import (
	"context"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	"github.com/m04kA/SMC-FacilityService/internal/integrations/identityservice"
)

// FacilityRepository интерфейс репозитория каталога площадок
type FacilityRepository interface {
	Create(ctx context.Context, f *domain.Facility) (*domain.Facility, error)
	GetByID(ctx context.Context, id int64) (*domain.Facility, error)
	List(ctx context.Context, filter domain.FacilityFilter, sortBy domain.FacilitySort) ([]*domain.Facility, error)
	Update(ctx context.Context, id int64, patch domain.FacilityPatch) (*domain.Facility, error)
	Delete(ctx context.Context, id int64) error
}

// IdentityServiceClient интерфейс клиента для IdentityService
type IdentityServiceClient interface {
	GetUser(ctx context.Context, email string) (*identityservice.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
