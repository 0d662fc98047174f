package get_tournaments

import (
	"context"

	"github.com/m04kA/SMC-DartsBookingService/internal/service/tournaments/models"
)

type TournamentService interface {
	List(ctx context.Context) (*models.TournamentListResponse, error)
	Active(ctx context.Context) (*models.TournamentListResponse, error)
	GetByID(ctx context.Context, id string) (*models.TournamentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
