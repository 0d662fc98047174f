package manage_users

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DartsBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-DartsBookingService/internal/service/users"
	"github.com/m04kA/SMC-DartsBookingService/internal/service/users/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUserNotFound       = "пользователь не найден"
	msgCannotBlockAdmin   = "администратора нельзя заблокировать"
)

// Handler администрирования пользователей. Маршруты защищены middleware.RequireAdmin.
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

// List GET /api/v1/admin/users
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/users - Failed to list users: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/users - Users retrieved: count=%d", result.Count)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// SetBlocked PUT /api/v1/admin/users/{userId}/blocked
func (h *Handler) SetBlocked(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var req models.SetBlockedRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/users/{id}/blocked - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SetBlocked(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrUserNotFound):
			h.logger.Warn("PUT /admin/users/{id}/blocked - User not found: user_id=%s", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, users.ErrCannotBlockAdmin):
			h.logger.Warn("PUT /admin/users/{id}/blocked - Cannot block admin: user_id=%s", userID)
			handlers.RespondForbidden(w, msgCannotBlockAdmin)

		default:
			h.logger.Error("PUT /admin/users/{id}/blocked - Failed to update user: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/users/{id}/blocked - User updated: user_id=%s, blocked=%t", userID, result.Blocked)
	handlers.RespondJSON(w, http.StatusOK, result)
}
