package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrUserNotFound возвращается, когда пользователь не найден в IdentityService
	ErrUserNotFound = errors.New("user not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrAlreadyCancelled возвращается при повторной отмене бронирования
	ErrAlreadyCancelled = errors.New("booking is already cancelled")

	// ErrCannotCancel возвращается, когда статус бронирования не допускает отмену
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrCancellationWindowExpired возвращается при отмене менее чем
	// за 24 часа до начала бронирования
	ErrCancellationWindowExpired = errors.New("cancellation window expired")

	// ErrCannotUpdate возвращается, когда бронирование нельзя изменить
	ErrCannotUpdate = errors.New("booking cannot be updated")

	// ErrCapacityExceeded возвращается, когда число участников превышает
	// вместимость площадки
	ErrCapacityExceeded = errors.New("attendees exceed facility capacity")

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
