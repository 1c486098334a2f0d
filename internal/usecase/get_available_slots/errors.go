package get_available_slots

import "errors"

var (
	// ErrFacilityNotFound площадка не найдена
	ErrFacilityNotFound = errors.New("usecase.get_available_slots: facility not found")

	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("usecase.get_available_slots: invalid input")

	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("usecase.get_available_slots: internal error")
)
