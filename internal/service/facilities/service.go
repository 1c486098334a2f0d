package facilities

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	facilityRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/facility"
	identityClient "github.com/m04kA/SMC-FacilityService/internal/integrations/identityservice"
	"github.com/m04kA/SMC-FacilityService/internal/service/facilities/models"
)

// Service сервис каталога площадок
// Чтение каталога публично; создание, обновление и удаление доступны
// только пользователям с ролью admin в IdentityService
type Service struct {
	facilityRepo   FacilityRepository
	identityClient IdentityServiceClient
	logger         Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	facilityRepo FacilityRepository,
	identityClient IdentityServiceClient,
	logger Logger,
) *Service {
	return &Service{
		facilityRepo:   facilityRepo,
		identityClient: identityClient,
		logger:         logger,
	}
}

// List получает каталог площадок с фильтрацией и сортировкой
// Без фильтров повторный вызов возвращает тот же набор (идемпотентное чтение)
func (s *Service) List(ctx context.Context, req *models.ListFacilitiesRequest) (*models.FacilityListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	sortBy, err := req.ToDomainSort()
	if err != nil {
		s.logger.Warn("List: invalid sort parameter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	facilities, err := s.facilityRepo.List(ctx, filter, sortBy)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d facilities", len(facilities))
	return models.FromDomainFacilityList(facilities), nil
}

// GetByID получает площадку по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.FacilityResponse, error) {
	s.logger.Info("GetByID: fetching facility id=%d", id)

	facility, err := s.facilityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			s.logger.Warn("GetByID: facility id=%d not found", id)
			return nil, ErrFacilityNotFound
		}
		s.logger.Error("GetByID: repository error for facility id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainFacility(facility), nil
}

// Create создает новую площадку (только администратор)
func (s *Service) Create(ctx context.Context, req *models.CreateFacilityRequest) (*models.FacilityResponse, error) {
	s.logger.Info("Create: creating facility name=%q by actor=%s", req.Name, req.ActorEmail)

	if err := s.checkAdminAccess(ctx, req.ActorEmail); err != nil {
		return nil, err
	}

	facility, err := buildFacility(req)
	if err != nil {
		s.logger.Warn("Create: validation failed for facility name=%q: %v", req.Name, err)
		return nil, err
	}

	created, err := s.facilityRepo.Create(ctx, facility)
	if err != nil {
		s.logger.Error("Create: repository error for facility name=%q: %v", req.Name, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created facility id=%d", created.ID)
	return models.FromDomainFacility(created), nil
}

// Update обновляет площадку (только администратор)
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateFacilityRequest) (*models.FacilityResponse, error) {
	s.logger.Info("Update: updating facility id=%d by actor=%s", id, req.ActorEmail)

	if err := s.checkAdminAccess(ctx, req.ActorEmail); err != nil {
		return nil, err
	}

	patch, err := buildFacilityPatch(req)
	if err != nil {
		s.logger.Warn("Update: validation failed for facility id=%d: %v", id, err)
		return nil, err
	}

	updated, err := s.facilityRepo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			s.logger.Warn("Update: facility id=%d not found", id)
			return nil, ErrFacilityNotFound
		}
		s.logger.Error("Update: repository error for facility id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated facility id=%d", id)
	return models.FromDomainFacility(updated), nil
}

// Delete удаляет площадку (только администратор)
// Существующие бронирования площадки не отменяются: они хранят
// денормализованное имя площадки для истории
func (s *Service) Delete(ctx context.Context, id int64, actorEmail string) error {
	s.logger.Info("Delete: deleting facility id=%d by actor=%s", id, actorEmail)

	if err := s.checkAdminAccess(ctx, actorEmail); err != nil {
		return err
	}

	if err := s.facilityRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			s.logger.Warn("Delete: facility id=%d not found", id)
			return ErrFacilityNotFound
		}
		s.logger.Error("Delete: repository error for facility id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted facility id=%d", id)
	return nil
}

// checkAdminAccess проверяет, что пользователь имеет роль администратора
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

// buildFacility собирает и валидирует domain модель из запроса на создание
func buildFacility(req *models.CreateFacilityRequest) (*domain.Facility, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.Location == "" {
		return nil, fmt.Errorf("%w: location is required", ErrInvalidInput)
	}

	category := domain.FacilityCategory(req.Category)
	if !domain.IsValidFacilityCategory(category) {
		return nil, fmt.Errorf("%w: invalid category %q", ErrInvalidInput, req.Category)
	}

	if err := validateCapacity(req.Capacity); err != nil {
		return nil, err
	}
	if err := validatePricing(req.Pricing); err != nil {
		return nil, err
	}

	hours, err := req.OperatingHours.ToDomainOperatingHours()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid operating hours: %v", ErrInvalidInput, err)
	}
	if !hours.Start.IsBefore(hours.End) {
		return nil, fmt.Errorf("%w: operating hours start must be before end", ErrInvalidInput)
	}

	status := domain.FacilityAvailable
	if req.Status != nil {
		status = domain.FacilityStatus(*req.Status)
		if !domain.IsValidFacilityStatus(status) {
			return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *req.Status)
		}
	}

	amenities := req.Amenities
	if amenities == nil {
		amenities = []string{}
	}

	return &domain.Facility{
		Name:        req.Name,
		Description: req.Description,
		Category:    category,
		Location:    req.Location,
		City:        req.City,
		State:       req.State,
		Capacity: domain.Capacity{
			Min: req.Capacity.Min,
			Max: req.Capacity.Max,
		},
		Pricing: domain.Pricing{
			Hourly:  req.Pricing.Hourly,
			HalfDay: req.Pricing.HalfDay,
			FullDay: req.Pricing.FullDay,
		},
		OperatingHours: hours,
		Amenities:      amenities,
		Status:         status,
	}, nil
}

// buildFacilityPatch собирает и валидирует patch из запроса на обновление
func buildFacilityPatch(req *models.UpdateFacilityRequest) (domain.FacilityPatch, error) {
	patch := domain.FacilityPatch{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		City:        req.City,
		State:       req.State,
		Amenities:   req.Amenities,
		Rating:      req.Rating,
	}

	if req.Category != nil {
		category := domain.FacilityCategory(*req.Category)
		if !domain.IsValidFacilityCategory(category) {
			return patch, fmt.Errorf("%w: invalid category %q", ErrInvalidInput, *req.Category)
		}
		patch.Category = &category
	}

	if req.Capacity != nil {
		if err := validateCapacity(*req.Capacity); err != nil {
			return patch, err
		}
		patch.Capacity = &domain.Capacity{
			Min: req.Capacity.Min,
			Max: req.Capacity.Max,
		}
	}

	if req.Pricing != nil {
		if err := validatePricing(*req.Pricing); err != nil {
			return patch, err
		}
		patch.Pricing = &domain.Pricing{
			Hourly:  req.Pricing.Hourly,
			HalfDay: req.Pricing.HalfDay,
			FullDay: req.Pricing.FullDay,
		}
	}

	if req.OperatingHours != nil {
		hours, err := req.OperatingHours.ToDomainOperatingHours()
		if err != nil {
			return patch, fmt.Errorf("%w: invalid operating hours: %v", ErrInvalidInput, err)
		}
		if !hours.Start.IsBefore(hours.End) {
			return patch, fmt.Errorf("%w: operating hours start must be before end", ErrInvalidInput)
		}
		patch.OperatingHours = &hours
	}

	if req.Status != nil {
		status := domain.FacilityStatus(*req.Status)
		if !domain.IsValidFacilityStatus(status) {
			return patch, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *req.Status)
		}
		patch.Status = &status
	}

	return patch, nil
}

func validateCapacity(c models.CapacityDTO) error {
	if c.Min <= 0 || c.Max <= 0 {
		return fmt.Errorf("%w: capacity values must be positive", ErrInvalidInput)
	}
	if c.Min > c.Max {
		return fmt.Errorf("%w: capacity min must not exceed max", ErrInvalidInput)
	}
	return nil
}

func validatePricing(p models.PricingDTO) error {
	if p.Hourly < 0 || p.HalfDay < 0 || p.FullDay < 0 {
		return fmt.Errorf("%w: prices must be non-negative", ErrInvalidInput)
	}
	return nil
}
