package register_tournament

import (
	"context"

	"github.com/m04kA/SMC-DartsBookingService/internal/service/tournaments/models"
)

type TournamentService interface {
	Register(ctx context.Context, tournamentID string, req *models.RegisterRequest) (*models.RegistrationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
