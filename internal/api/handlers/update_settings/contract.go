package update_settings

import (
	"context"

	"github.com/m04kA/SMC-DartsBookingService/internal/service/settings/models"
)

type SettingsService interface {
	Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error)
	UpdateDiscountTiers(ctx context.Context, req *models.UpdateDiscountTiersRequest) (*models.SettingsResponse, error)
	AddMachine(ctx context.Context, req *models.AddMachineRequest) (*models.SettingsResponse, error)
	RemoveMachine(ctx context.Context, machineID string) (*models.SettingsResponse, error)
	AddBlockedDate(ctx context.Context, req *models.BlockedDateRequest) (*models.SettingsResponse, error)
	RemoveBlockedDate(ctx context.Context, req *models.BlockedDateRequest) (*models.SettingsResponse, error)
	UpdateLoyalty(ctx context.Context, req *models.UpdateLoyaltyRequest) (*models.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
