package register_tournament

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DartsBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-DartsBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-DartsBookingService/internal/service/tournaments"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "турнир не найден"
	msgUserNotFound       = "пользователь не найден"
	msgUserBlocked        = "пользователь заблокирован"
	msgRegistrationClosed = "регистрация на турнир закрыта"
	msgAlreadyRegistered  = "партнер уже зарегистрирован"
	msgInvalidInput       = "некорректные данные регистрации"
)

type Handler struct {
	service TournamentService
	logger  Logger
}

func NewHandler(service TournamentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/tournaments/{tournamentId}/registration
// Повторный вызов отменяет регистрацию
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tournamentID := mux.Vars(r)["tournamentId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /tournaments/{id}/registration - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RegisterRequest
	if r.ContentLength != 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("POST /tournaments/{id}/registration - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	result, err := h.service.Register(r.Context(), tournamentID, req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, tournaments.ErrTournamentNotFound):
			h.logger.Warn("POST /tournaments/{id}/registration - Tournament not found: tournament_id=%s", tournamentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, tournaments.ErrUserNotFound):
			h.logger.Warn("POST /tournaments/{id}/registration - User not found: %v", err)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, tournaments.ErrUserBlocked):
			h.logger.Warn("POST /tournaments/{id}/registration - User blocked: %v", err)
			handlers.RespondForbidden(w, msgUserBlocked)

		case errors.Is(err, tournaments.ErrRegistrationClosed):
			h.logger.Warn("POST /tournaments/{id}/registration - Registration closed: tournament_id=%s", tournamentID)
			handlers.RespondConflict(w, msgRegistrationClosed)

		case errors.Is(err, tournaments.ErrAlreadyRegistered):
			h.logger.Warn("POST /tournaments/{id}/registration - Already registered: %v", err)
			handlers.RespondConflict(w, msgAlreadyRegistered)

		case errors.Is(err, tournaments.ErrInvalidInput):
			h.logger.Warn("POST /tournaments/{id}/registration - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /tournaments/{id}/registration - Failed to register: tournament_id=%s, user_id=%s, error=%v",
				tournamentID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /tournaments/{id}/registration - Registration toggled: tournament_id=%s, user_id=%s, registered=%t",
		tournamentID, userID, result.Registered)
	handlers.RespondJSON(w, http.StatusOK, result)
}
