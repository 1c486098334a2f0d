package locations

import "errors"

var (
	// ErrStateNotFound регион не найден
	ErrStateNotFound = errors.New("service.locations: state not found")

	// ErrDuplicateCode регион с таким кодом уже существует
	ErrDuplicateCode = errors.New("service.locations: state code already exists")

	// ErrUserNotFound пользователь не найден
	ErrUserNotFound = errors.New("service.locations: user not found")

	// ErrAccessDenied доступ запрещен
	ErrAccessDenied = errors.New("service.locations: access denied")

	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("service.locations: invalid input")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("service.locations: internal error")
)
