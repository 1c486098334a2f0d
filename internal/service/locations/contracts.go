package locations

import (
	"context"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	identityClient "github.com/m04kA/SMC-FacilityService/internal/integrations/identityservice"
)

// StateRepository интерфейс репозитория справочника регионов
type StateRepository interface {
	Create(ctx context.Context, state *domain.State) (*domain.State, error)
	GetByID(ctx context.Context, id int64) (*domain.State, error)
	List(ctx context.Context) ([]*domain.State, error)
	Update(ctx context.Context, id int64, patch domain.StatePatch) (*domain.State, error)
	Delete(ctx context.Context, id int64) error
}

// FacilityCounter интерфейс для подсчёта площадок, привязанных к локации
// Используется для предупреждения о рассинхронизации каталога при правках справочника
type FacilityCounter interface {
	CountByCityAndState(ctx context.Context, city, state string) (int, error)
}

// IdentityServiceClient интерфейс клиента сервиса пользователей
type IdentityServiceClient interface {
	GetUser(ctx context.Context, email string) (*identityClient.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...any)
	Warn(format string, v ...any)
	Error(format string, v ...any)
}
