package bookings

import (
	"context"

	"github.com/m04kA/SMC-DartsBookingService/internal/domain"
)

// SnapshotStore интерфейс хранилища снимков (только чтение)
type SnapshotStore interface {
	Appointments(ctx context.Context) ([]domain.Appointment, error)
	User(ctx context.Context, id string) (*domain.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
