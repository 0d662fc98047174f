package manage_offers

import (
	"context"

	"github.com/m04kA/SMC-DartsBookingService/internal/service/offers/models"
)

type OfferService interface {
	Templates(ctx context.Context) (*models.OfferListResponse, error)
	CreateTemplate(ctx context.Context, req *models.CreateTemplateRequest) (*models.OfferResponse, error)
	SendTemplate(ctx context.Context, templateID string, req *models.SendTemplateRequest) (*models.OfferListResponse, error)
	Recipients(ctx context.Context, templateID string) (*models.OfferListResponse, error)
	Delete(ctx context.Context, offerID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
