package tournaments

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DartsBookingService/internal/domain"
)

// SnapshotStore интерфейс хранилища снимков
type SnapshotStore interface {
	Tournaments(ctx context.Context) ([]domain.Tournament, error)
	SaveTournaments(ctx context.Context, tournaments []domain.Tournament) error
	Settings(ctx context.Context) (domain.AppSettings, error)
	SaveSettings(ctx context.Context, settings domain.AppSettings) error
	User(ctx context.Context, id string) (*domain.User, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder интерфейс доменных метрик турниров
type MetricsRecorder interface {
	RecordMatchResult(final bool)
	RecordPrizeOffers(offerType string, count int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
