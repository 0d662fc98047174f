package users

import (
	"context"

	"github.com/m04kA/SMC-DartsBookingService/internal/domain"
)

// SnapshotStore интерфейс хранилища снимков
type SnapshotStore interface {
	Users(ctx context.Context) ([]domain.User, error)
	SaveUsers(ctx context.Context, users []domain.User) error
	Appointments(ctx context.Context) ([]domain.Appointment, error)
	Settings(ctx context.Context) (domain.AppSettings, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
