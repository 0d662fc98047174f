package manage_tournaments

import (
	"context"

	"github.com/m04kA/SMC-DartsBookingService/internal/service/tournaments/models"
)

type TournamentService interface {
	Create(ctx context.Context, req *models.CreateTournamentRequest) (*models.TournamentResponse, error)
	Delete(ctx context.Context, id string) error
	UpdateSeed(ctx context.Context, tournamentID, participantID string, req *models.UpdateSeedRequest) (*models.TournamentResponse, error)
	AutoSeed(ctx context.Context, tournamentID string) (*models.TournamentResponse, error)
	Start(ctx context.Context, tournamentID string) (*models.TournamentResponse, error)
	Advance(ctx context.Context, tournamentID, matchID string, req *models.AdvanceRequest) (*models.TournamentResponse, error)
	DistributePrizes(ctx context.Context, tournamentID string) (*models.PrizesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
