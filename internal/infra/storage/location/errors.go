package location

import "errors"

var (
	// ErrStateNotFound возвращается, когда штат не найден
	ErrStateNotFound = errors.New("location.repository: state not found")

	// ErrDuplicateCode возвращается при попытке создать штат с занятым кодом
	ErrDuplicateCode = errors.New("location.repository: duplicate state code")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("location.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("location.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("location.repository: failed to scan row")
)
