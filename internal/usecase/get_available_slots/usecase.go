package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	facilityRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/facility"
)

// UseCase сценарий получения сетки доступных слотов площадки на дату
type UseCase struct {
	bookingRepo  BookingRepository
	facilityRepo FacilityRepository
	logger       Logger
}

// NewUseCase создает новый экземпляр сценария
func NewUseCase(bookingRepo BookingRepository, facilityRepo FacilityRepository, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		facilityRepo: facilityRepo,
		logger:       logger,
	}
}

// Execute возвращает часовую сетку слотов площадки на указанную дату
func (uc *UseCase) Execute(ctx context.Context, req *GetAvailableSlotsRequest) (*GetAvailableSlotsResponse, error) {
	uc.logger.Info("Execute: fetching slots for facility=%d, date=%s", req.FacilityID, req.Date)

	if req.FacilityID <= 0 {
		return nil, fmt.Errorf("%w: facilityId is required", ErrInvalidInput)
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		uc.logger.Warn("Execute: invalid date=%s", req.Date)
		return nil, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
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

	bookings, err := uc.bookingRepo.GetByFacilityWithFilter(ctx, domain.FacilityBookingsFilter{
		FacilityID: facility.ID,
		Date:       &date,
	})
	if err != nil {
		uc.logger.Error("Execute: failed to get bookings for facility id=%d: %v", facility.ID, err)
		return nil, fmt.Errorf("%w: Execute - failed to get bookings: %v", ErrInternal, err)
	}

	slots := buildSlotGrid(facility.OperatingHours, bookings)

	uc.logger.Info("Execute: facility id=%d has %d slots on %s", facility.ID, len(slots), req.Date)
	return fromDomainSlots(facility.ID, req.Date, slots), nil
}
