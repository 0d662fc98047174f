package manage_users

import (
	"context"

	"github.com/m04kA/SMC-DartsBookingService/internal/service/users/models"
)

type UserService interface {
	List(ctx context.Context) (*models.UserListResponse, error)
	SetBlocked(ctx context.Context, id string, req *models.SetBlockedRequest) (*models.UserResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
