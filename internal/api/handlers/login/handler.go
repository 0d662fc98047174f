package login

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DartsBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-DartsBookingService/internal/service/users"
	"github.com/m04kA/SMC-DartsBookingService/internal/service/users/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidCredentials = "укажите имя и корректный email"
	msgUserBlocked        = "пользователь заблокирован"
)

type Handler struct {
	service UserService
	logger  Logger
}

func NewHandler(service UserService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/auth/login
// Возвращает пользователя, чей ID дальше передается в заголовке X-User-ID
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	user, err := h.service.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrInvalidInput):
			h.logger.Warn("POST /auth/login - Invalid credentials: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCredentials)

		case errors.Is(err, users.ErrUserBlocked):
			h.logger.Warn("POST /auth/login - User blocked: email=%s", req.Email)
			handlers.RespondForbidden(w, msgUserBlocked)

		default:
			h.logger.Error("POST /auth/login - Failed to login: email=%s, error=%v", req.Email, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /auth/login - User logged in: user_id=%s", user.ID)
	handlers.RespondJSON(w, http.StatusOK, user)
}
