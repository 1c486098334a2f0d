package get_available_slots

import (
	"github.com/m04kA/SMC-FacilityService/internal/domain"
	"github.com/m04kA/SMC-FacilityService/pkg/types"
)

// buildSlotGrid строит часовую сетку слотов в пределах часов работы площадки
// и помечает занятость каждого слота по активным бронированиям
func buildSlotGrid(hours domain.OperatingHours, bookings []*domain.Booking) []domain.AvailableSlot {
	var slots []domain.AvailableSlot

	cursor := hours.Start
	for cursor.IsBefore(hours.End) {
		next, err := cursor.AddMinutes(domain.SlotStepMinutes)
		if err != nil {
			break
		}
		if hours.End.IsBefore(next) {
			break
		}

		slots = append(slots, domain.AvailableSlot{
			StartTime:       cursor,
			DurationMinutes: domain.SlotStepMinutes,
			Available:       !slotTaken(cursor, next, bookings),
		})

		cursor = next
	}

	return slots
}

// slotTaken проверяет пересечение слота с активным бронированием
// Касание границ пересечением не считается
func slotTaken(start, end types.TimeString, bookings []*domain.Booking) bool {
	for _, b := range bookings {
		if b.IsCancelled() {
			continue
		}

		bookingEnd, err := b.EndTime()
		if err != nil {
			continue
		}

		if start.IsBefore(bookingEnd) && b.StartTime.IsBefore(end) {
			return true
		}
	}
	return false
}
