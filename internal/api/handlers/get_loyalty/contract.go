package get_loyalty

import (
	"context"

	"github.com/m04kA/SMC-DartsBookingService/internal/service/loyalty/models"
)

type LoyaltyService interface {
	Status(ctx context.Context, req *models.StatusRequest) (*models.StatusResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
