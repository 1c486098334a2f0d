package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/booking"
	facilityRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/facility"
	"github.com/m04kA/SMC-FacilityService/pkg/types"
)

// UseCase сценарий создания бронирования
// Проверка пересечений и вставка выполняются в сериализуемой транзакции,
// чтобы два конкурентных запроса не заняли один интервал
type UseCase struct {
	bookingRepo    BookingRepository
	facilityRepo   FacilityRepository
	identityClient IdentityServiceClient
	txManager      TxManager
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр сценария создания бронирования
func NewUseCase(
	bookingRepo BookingRepository,
	facilityRepo FacilityRepository,
	identityClient IdentityServiceClient,
	txManager TxManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		facilityRepo:   facilityRepo,
		identityClient: identityClient,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// NewUseCaseWithTimeProvider создает сценарий с фиксированным провайдером времени
func NewUseCaseWithTimeProvider(
	bookingRepo BookingRepository,
	facilityRepo FacilityRepository,
	identityClient IdentityServiceClient,
	txManager TxManager,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		facilityRepo:   facilityRepo,
		identityClient: identityClient,
		txManager:      txManager,
		timeProvider:   timeProvider,
		logger:         logger,
	}
}

// Execute создает бронирование площадки
func (uc *UseCase) Execute(ctx context.Context, req *CreateBookingRequest) (*CreateBookingResponse, error) {
	uc.logger.Info("Execute: creating booking for facility=%d, user=%s, date=%s, start=%s",
		req.FacilityID, req.UserEmail, req.BookingDate, req.StartTime)

	parsed, err := validateRequest(req, uc.timeProvider.Now())
	if err != nil {
		uc.logger.Warn("Execute: validation failed: %v", err)
		return nil, err
	}

	facility, err := uc.facilityRepo.GetByID(ctx, req.FacilityID)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			uc.logger.Warn("Execute: facility id=%d not found", req.FacilityID)
			return nil, ErrFacilityNotFound
		}
		uc.logger.Error("Execute: failed to get facility id=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: Execute - failed to get facility: %v", ErrInternal, err)
	}

	if !facility.CanAccommodate(req.Attendees) {
		uc.logger.Warn("Execute: facility id=%d cannot accommodate %d attendees (max %d)",
			facility.ID, req.Attendees, facility.Capacity.Max)
		return nil, fmt.Errorf("%w: facility holds at most %d attendees", ErrCapacityExceeded, facility.Capacity.Max)
	}

	if !facility.OperatingHours.Contains(parsed.startTime, parsed.endTime) {
		uc.logger.Warn("Execute: interval %s-%s is outside facility id=%d operating hours %s-%s",
			parsed.startTime, parsed.endTime, facility.ID,
			facility.OperatingHours.Start, facility.OperatingHours.End)
		return nil, fmt.Errorf("%w: facility is open %s-%s",
			ErrOutsideOperatingHours, facility.OperatingHours.Start, facility.OperatingHours.End)
	}

	// Телефон обязателен: запрос либо профиль пользователя должен его содержать
	userName, userPhone := uc.resolveContact(ctx, req)
	if strings.TrimSpace(userPhone) == "" {
		uc.logger.Warn("Execute: no phone provided for user email=%s", req.UserEmail)
		return nil, fmt.Errorf("%w: userPhone is required", ErrInvalidInput)
	}

	// Ключ идемпотентности: повтор запроса с тем же reference
	// возвращает уже созданное бронирование
	reference := req.Reference
	if reference == "" {
		reference = uuid.NewString()
	} else {
		existing, err := uc.bookingRepo.GetByReference(ctx, reference)
		if err == nil {
			uc.logger.Info("Execute: reference=%s already exists, returning booking id=%d", reference, existing.ID)
			return FromDomainBooking(existing), nil
		}
		if !errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Error("Execute: failed to check reference=%s: %v", reference, err)
			return nil, fmt.Errorf("%w: Execute - failed to check reference: %v", ErrInternal, err)
		}
	}

	booking := &domain.Booking{
		Reference:     reference,
		FacilityID:    facility.ID,
		UserEmail:     req.UserEmail,
		UserName:      userName,
		UserPhone:     userPhone,
		BookingDate:   parsed.bookingDate,
		StartTime:     parsed.startTime,
		DurationHours: req.DurationHours,
		Attendees:     req.Attendees,
		Purpose:       req.Purpose,
		Equipment:     req.Equipment,
		FacilityName:  facility.Name,
		TotalAmount:   facility.Pricing.Hourly * float64(req.DurationHours),
		Status:        domain.StatusConfirmed,
	}

	var created *domain.Booking
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Блокируем бронирования площадки на эту дату и проверяем пересечения
		existing, err := uc.bookingRepo.GetByFacilityWithFilter(txCtx, domain.FacilityBookingsFilter{
			FacilityID: facility.ID,
			Date:       &parsed.bookingDate,
		})
		if err != nil {
			return fmt.Errorf("failed to get existing bookings: %w", err)
		}

		if hasOverlap(existing, parsed.startTime, parsed.endTime) {
			return ErrSlotNotAvailable
		}

		created, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotNotAvailable) {
			uc.logger.Warn("Execute: slot %s-%s on %s is not available for facility id=%d",
				parsed.startTime, parsed.endTime, req.BookingDate, facility.ID)
			return nil, ErrSlotNotAvailable
		}
		if errors.Is(err, bookingRepo.ErrDuplicateReference) {
			// Конкурентный повтор с тем же reference: вставка проиграла гонку,
			// читаем уже созданное бронирование
			existing, getErr := uc.bookingRepo.GetByReference(ctx, reference)
			if getErr == nil {
				uc.logger.Info("Execute: concurrent duplicate reference=%s, returning booking id=%d",
					reference, existing.ID)
				return FromDomainBooking(existing), nil
			}
			uc.logger.Error("Execute: duplicate reference=%s but lookup failed: %v", reference, getErr)
		}
		uc.logger.Error("Execute: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: Execute - transaction failed: %v", ErrInternal, err)
	}

	uc.logger.Info("Execute: successfully created booking id=%d, reference=%s, total=%.2f",
		created.ID, created.Reference, created.TotalAmount)
	return FromDomainBooking(created), nil
}

// resolveContact подставляет имя и телефон из профиля пользователя,
// если сервис пользователей доступен; иначе берёт данные из запроса
func (uc *UseCase) resolveContact(ctx context.Context, req *CreateBookingRequest) (name, phone string) {
	name, phone = req.UserName, req.UserPhone

	user, err := uc.identityClient.GetUserWithGracefulDegradation(ctx, req.UserEmail)
	if err != nil || user == nil {
		uc.logger.Warn("resolveContact: identity service unavailable for email=%s, using request data", req.UserEmail)
		return name, phone
	}

	if user.Name != "" {
		name = user.Name
	}
	if phone == "" && user.Phone != "" {
		phone = user.Phone
	}
	return name, phone
}

// hasOverlap проверяет пересечение интервала с активными бронированиями
// Касание границ (конец одного равен началу другого) пересечением не считается
func hasOverlap(bookings []*domain.Booking, start, end types.TimeString) bool {
	for _, b := range bookings {
		if b.IsCancelled() {
			continue
		}

		existingEnd, err := b.EndTime()
		if err != nil {
			continue
		}

		if start.IsBefore(existingEnd) && b.StartTime.IsBefore(end) {
			return true
		}
	}
	return false
}
