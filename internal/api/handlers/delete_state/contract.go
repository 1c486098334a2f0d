package delete_state

import "context"

type LocationService interface {
	Delete(ctx context.Context, id int64, actorEmail string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
