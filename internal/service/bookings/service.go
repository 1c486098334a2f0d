package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/booking"
	facilityRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/facility"
	identityClient "github.com/m04kA/SMC-FacilityService/internal/integrations/identityservice"
	"github.com/m04kA/SMC-FacilityService/internal/service/bookings/models"
)

// Service сервис для работы с жизненным циклом бронирований
// Создание бронирований вынесено в отдельный usecase (create_booking),
// так как требует сериализуемой транзакции
type Service struct {
	bookingRepo    BookingRepository
	facilityRepo   FacilityRepository
	identityClient IdentityServiceClient
	timeProvider   TimeProvider
	logger         Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	facilityRepo FacilityRepository,
	identityClient IdentityServiceClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:    bookingRepo,
		facilityRepo:   facilityRepo,
		identityClient: identityClient,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// NewServiceWithTimeProvider создает сервис с фиксированным провайдером времени
// Используется в тестах правил отмены и классификации
func NewServiceWithTimeProvider(
	bookingRepo BookingRepository,
	facilityRepo FacilityRepository,
	identityClient IdentityServiceClient,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:    bookingRepo,
		facilityRepo:   facilityRepo,
		identityClient: identityClient,
		timeProvider:   timeProvider,
		logger:         logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь может видеть только своё бронирование; администратор - любое
func (s *Service) GetByID(ctx context.Context, id int64, actorEmail string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for actor=%s", id, actorEmail)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkBookingAccess(ctx, booking, actorEmail); err != nil {
		s.logger.Warn("GetByID: access denied for actor=%s to booking id=%d", actorEmail, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает бронирования пользователя, сгруппированные
// на upcoming/past/cancelled. Группы вычисляются на чтении:
// подтверждённое бронирование с прошедшей датой попадает в past,
// хотя его статус в хранилище остаётся confirmed
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.GroupedBookingsResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%s, actor=%s", req.UserEmail, req.ActorEmail)

	// Пользователь видит только свою историю; администратор - любую
	if req.ActorEmail != req.UserEmail {
		if err := s.checkAdminAccess(ctx, req.ActorEmail); err != nil {
			s.logger.Warn("GetUserBookings: access denied for actor=%s to user=%s", req.ActorEmail, req.UserEmail)
			return nil, err
		}
	}

	bookings, err := s.bookingRepo.GetByUserEmail(ctx, req.UserEmail, nil)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%s: %v", req.UserEmail, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	groups := domain.ClassifyBookings(bookings, s.timeProvider.Now())

	s.logger.Info("GetUserBookings: user=%s has %d upcoming, %d past, %d cancelled bookings",
		req.UserEmail, len(groups.Upcoming), len(groups.Past), len(groups.Cancelled))
	return models.FromDomainGroups(groups), nil
}

// Cancel отменяет бронирование
// Владелец может отменить не позднее, чем за 24 часа до начала;
// администратор может отменить в любой момент
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by actor=%s", bookingID, req.ActorEmail)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if booking.IsCancelled() {
		s.logger.Warn("Cancel: booking id=%d is already cancelled", bookingID)
		return ErrAlreadyCancelled
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	isOwner := booking.UserEmail == req.ActorEmail
	if !isOwner {
		// Не владелец - проверяем права администратора
		if err := s.checkAdminAccess(ctx, req.ActorEmail); err != nil {
			s.logger.Warn("Cancel: access denied for actor=%s to cancel booking id=%d", req.ActorEmail, bookingID)
			return ErrAccessDenied
		}
	}

	// Окно отмены действует для владельца; администратор может отменить позже
	if isOwner && !booking.IsWithinCancellationWindow(s.timeProvider.Now()) {
		s.logger.Warn("Cancel: cancellation window expired for booking id=%d (starts at %s)",
			bookingID, booking.StartDateTime())
		return ErrCancellationWindowExpired
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

// Update применяет частичное обновление бронирования
// totalAmount намеренно НЕ пересчитывается при изменении durationHours:
// сумма фиксируется в момент создания (см. DESIGN.md)
func (s *Service) Update(ctx context.Context, bookingID int64, req *models.UpdateBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Update: updating booking id=%d by actor=%s", bookingID, req.ActorEmail)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Update: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Update: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if err := s.checkBookingAccess(ctx, booking, req.ActorEmail); err != nil {
		s.logger.Warn("Update: access denied for actor=%s to booking id=%d", req.ActorEmail, bookingID)
		return nil, err
	}

	if !booking.CanBeUpdated() {
		s.logger.Warn("Update: booking id=%d cannot be updated, status=%s", bookingID, booking.Status)
		return nil, ErrCannotUpdate
	}

	patch := req.ToDomainPatch()
	if patch.IsEmpty() {
		s.logger.Warn("Update: empty patch for booking id=%d", bookingID)
		return nil, fmt.Errorf("%w: patch must change at least one field", ErrInvalidInput)
	}

	if err := s.validatePatch(ctx, booking, patch); err != nil {
		s.logger.Warn("Update: validation failed for booking id=%d: %v", bookingID, err)
		return nil, err
	}

	updated, err := s.bookingRepo.Update(ctx, bookingID, patch)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Update: booking id=%d not found during update", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Update: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated booking id=%d", bookingID)
	return models.FromDomainBooking(updated), nil
}

// UpdateStatus обновляет статус бронирования
// Доступно только администраторам; единственный способ записать completed
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by actor=%s",
		bookingID, req.Status, req.ActorEmail)

	if err := s.checkAdminAccess(ctx, req.ActorEmail); err != nil {
		s.logger.Warn("UpdateStatus: access denied for actor=%s", req.ActorEmail)
		return err
	}

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return nil
}

// Вспомогательные методы

// validatePatch проверяет бизнес-правила частичного обновления
func (s *Service) validatePatch(ctx context.Context, booking *domain.Booking, patch domain.BookingPatch) error {
	if patch.DurationHours != nil && *patch.DurationHours < domain.MinBookingDurationHours {
		return fmt.Errorf("%w: duration must be at least %d hour(s)", ErrInvalidInput, domain.MinBookingDurationHours)
	}

	if patch.Attendees != nil {
		if *patch.Attendees < domain.MinAttendees {
			return fmt.Errorf("%w: attendees must be positive", ErrInvalidInput)
		}

		// Проверяем вместимость; если площадка уже удалена из каталога,
		// ограничиться нечем - пропускаем с предупреждением
		facility, err := s.facilityRepo.GetByID(ctx, booking.FacilityID)
		if err != nil {
			if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
				s.logger.Warn("validatePatch: facility id=%d no longer exists, skipping capacity check",
					booking.FacilityID)
				return nil
			}
			return fmt.Errorf("%w: validatePatch - failed to get facility: %v", ErrInternal, err)
		}

		if !facility.CanAccommodate(*patch.Attendees) {
			return ErrCapacityExceeded
		}
	}

	return nil
}

// checkBookingAccess проверяет, что пользователь имеет доступ к бронированию
// Доступ есть у владельца бронирования и у администратора
func (s *Service) checkBookingAccess(ctx context.Context, booking *domain.Booking, actorEmail string) error {
	if booking.UserEmail == actorEmail {
		return nil
	}

	if err := s.checkAdminAccess(ctx, actorEmail); err != nil {
		// Ошибка уже залогирована в checkAdminAccess
		return ErrAccessDenied
	}

	return nil
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
