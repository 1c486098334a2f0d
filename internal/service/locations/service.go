package locations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	locationRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/location"
	identityClient "github.com/m04kA/SMC-FacilityService/internal/integrations/identityservice"
	"github.com/m04kA/SMC-FacilityService/internal/service/locations/models"
)

// Service сервис справочника регионов и городов
// Справочник независим от каталога: удаление города не трогает площадки,
// уже ссылающиеся на него, поэтому при правках пишем предупреждение в лог
type Service struct {
	stateRepo       StateRepository
	facilityCounter FacilityCounter
	identityClient  IdentityServiceClient
	logger          Logger
}

// NewService создает новый экземпляр сервиса локаций
func NewService(
	stateRepo StateRepository,
	facilityCounter FacilityCounter,
	identityClient IdentityServiceClient,
	logger Logger,
) *Service {
	return &Service{
		stateRepo:       stateRepo,
		facilityCounter: facilityCounter,
		identityClient:  identityClient,
		logger:          logger,
	}
}

// List возвращает все регионы с городами, отсортированные по имени
// Публичная операция, авторизация не требуется
func (s *Service) List(ctx context.Context) (*models.StateListResponse, error) {
	s.logger.Info("List: fetching all states")

	states, err := s.stateRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: found %d states", len(states))
	return models.FromDomainStateList(states), nil
}

// Create создает новый регион (только для администраторов)
func (s *Service) Create(ctx context.Context, req *models.CreateStateRequest) (*models.StateResponse, error) {
	s.logger.Info("Create: creating state name=%s code=%s by actor=%s", req.Name, req.Code, req.ActorEmail)

	if err := s.checkAdminAccess(ctx, req.ActorEmail); err != nil {
		s.logger.Warn("Create: access denied for actor=%s", req.ActorEmail)
		return nil, err
	}

	if err := validateName(req.Name); err != nil {
		return nil, err
	}
	if err := validateCode(req.Code); err != nil {
		return nil, err
	}
	cities, err := normalizeCities(req.Cities)
	if err != nil {
		return nil, err
	}

	state := &domain.State{
		Name:   strings.TrimSpace(req.Name),
		Code:   strings.ToUpper(strings.TrimSpace(req.Code)),
		Cities: cities,
	}

	created, err := s.stateRepo.Create(ctx, state)
	if err != nil {
		if errors.Is(err, locationRepo.ErrDuplicateCode) {
			s.logger.Warn("Create: state code=%s already exists", state.Code)
			return nil, ErrDuplicateCode
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created state id=%d code=%s", created.ID, created.Code)
	return models.FromDomainState(created), nil
}

// Update применяет частичное обновление региона (только для администраторов)
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateStateRequest) (*models.StateResponse, error) {
	s.logger.Info("Update: updating state id=%d by actor=%s", id, req.ActorEmail)

	if err := s.checkAdminAccess(ctx, req.ActorEmail); err != nil {
		s.logger.Warn("Update: access denied for actor=%s", req.ActorEmail)
		return nil, err
	}

	if req.IsEmpty() {
		s.logger.Warn("Update: empty patch for state id=%d", id)
		return nil, fmt.Errorf("%w: patch must change at least one field", ErrInvalidInput)
	}

	if req.Name != nil {
		if err := validateName(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Code != nil {
		if err := validateCode(*req.Code); err != nil {
			return nil, err
		}
		upper := strings.ToUpper(strings.TrimSpace(*req.Code))
		req.Code = &upper
	}
	if req.Cities != nil {
		cities, err := normalizeCities(req.Cities)
		if err != nil {
			return nil, err
		}
		req.Cities = cities
	}

	current, err := s.stateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, locationRepo.ErrStateNotFound) {
			s.logger.Warn("Update: state id=%d not found", id)
			return nil, ErrStateNotFound
		}
		s.logger.Error("Update: repository error for state id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if req.Cities != nil {
		s.warnAboutOrphanedFacilities(ctx, current, req.Cities)
	}

	updated, err := s.stateRepo.Update(ctx, id, req.ToDomainPatch())
	if err != nil {
		switch {
		case errors.Is(err, locationRepo.ErrStateNotFound):
			s.logger.Warn("Update: state id=%d not found during update", id)
			return nil, ErrStateNotFound
		case errors.Is(err, locationRepo.ErrDuplicateCode):
			s.logger.Warn("Update: state code is already taken")
			return nil, ErrDuplicateCode
		default:
			s.logger.Error("Update: repository error for state id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Update: successfully updated state id=%d", id)
	return models.FromDomainState(updated), nil
}

// Delete удаляет регион вместе со списком его городов (только для администраторов)
// Площадки, ссылающиеся на удалённые города, остаются в каталоге как есть
func (s *Service) Delete(ctx context.Context, id int64, actorEmail string) error {
	s.logger.Info("Delete: deleting state id=%d by actor=%s", id, actorEmail)

	if err := s.checkAdminAccess(ctx, actorEmail); err != nil {
		s.logger.Warn("Delete: access denied for actor=%s", actorEmail)
		return err
	}

	current, err := s.stateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, locationRepo.ErrStateNotFound) {
			s.logger.Warn("Delete: state id=%d not found", id)
			return ErrStateNotFound
		}
		s.logger.Error("Delete: repository error for state id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.warnAboutOrphanedFacilities(ctx, current, nil)

	if err := s.stateRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, locationRepo.ErrStateNotFound) {
			s.logger.Warn("Delete: state id=%d not found during deletion", id)
			return ErrStateNotFound
		}
		s.logger.Error("Delete: repository error for state id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted state id=%d", id)
	return nil
}

// Вспомогательные методы

// warnAboutOrphanedFacilities пишет предупреждение о площадках, чьи города
// исчезают из справочника. newCities == nil означает удаление всего региона
func (s *Service) warnAboutOrphanedFacilities(ctx context.Context, state *domain.State, newCities []string) {
	kept := make(map[string]struct{}, len(newCities))
	for _, c := range newCities {
		kept[c] = struct{}{}
	}

	for _, city := range state.Cities {
		if _, ok := kept[city]; ok {
			continue
		}

		count, err := s.facilityCounter.CountByCityAndState(ctx, city, state.Name)
		if err != nil {
			s.logger.Error("warnAboutOrphanedFacilities: failed to count facilities for city=%s: %v", city, err)
			continue
		}
		if count > 0 {
			s.logger.Warn("warnAboutOrphanedFacilities: %d facilities still reference city=%s, state=%s",
				count, city, state.Name)
		}
	}
}

// checkAdminAccess проверяет, что пользователь является администратором
func (s *Service) checkAdminAccess(ctx context.Context, email string) error {
	user, err := s.identityClient.GetUser(ctx, email)
	if err != nil {
		if errors.Is(err, identityClient.ErrUserNotFound) {
			s.logger.Warn("checkAdminAccess: user email=%s not found", email)
			return ErrUserNotFound
		}
		s.logger.Error("checkAdminAccess: failed to get user email=%s: %v", email, err)
		return fmt.Errorf("%w: checkAdminAccess - failed to get user: %v", ErrInternal, err)
	}

	if !user.IsAdmin() {
		s.logger.Warn("checkAdminAccess: user email=%s is not an administrator", email)
		return ErrAccessDenied
	}

	return nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: state name is required", ErrInvalidInput)
	}
	return nil
}

func validateCode(code string) error {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return fmt.Errorf("%w: state code is required", ErrInvalidInput)
	}
	if len(trimmed) > domain.MaxStateCodeLength {
		return fmt.Errorf("%w: state code must be at most %d characters", ErrInvalidInput, domain.MaxStateCodeLength)
	}
	return nil
}

func normalizeCities(cities []string) ([]string, error) {
	result := make([]string, 0, len(cities))
	seen := make(map[string]struct{}, len(cities))
	for _, c := range cities {
		trimmed := strings.TrimSpace(c)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: city name must not be empty", ErrInvalidInput)
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		result = append(result, trimmed)
	}
	return result, nil
}
