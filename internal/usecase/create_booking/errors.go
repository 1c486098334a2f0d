package create_booking

import "errors"

var (
	// ErrFacilityNotFound площадка не найдена
	ErrFacilityNotFound = errors.New("usecase.create_booking: facility not found")

	// ErrSlotNotAvailable запрошенный интервал пересекается с существующим бронированием
	ErrSlotNotAvailable = errors.New("usecase.create_booking: slot is not available")

	// ErrCapacityExceeded число участников превышает вместимость площадки
	ErrCapacityExceeded = errors.New("usecase.create_booking: capacity exceeded")

	// ErrOutsideOperatingHours интервал выходит за часы работы площадки
	ErrOutsideOperatingHours = errors.New("usecase.create_booking: outside operating hours")

	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("usecase.create_booking: invalid input")

	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("usecase.create_booking: internal error")
)
