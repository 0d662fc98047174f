package get_my_offers

import (
	"context"

	"github.com/m04kA/SMC-DartsBookingService/internal/service/offers/models"
)

type OfferService interface {
	EligibleOffers(ctx context.Context, userID string) (*models.OfferListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
