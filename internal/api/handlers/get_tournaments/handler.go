package get_tournaments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DartsBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-DartsBookingService/internal/service/tournaments"
	"github.com/m04kA/SMC-DartsBookingService/internal/service/tournaments/models"
)

const (
	msgInvalidParams = "некорректные параметры запроса"
	msgNotFound      = "турнир не найден"
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

// List GET /api/v1/tournaments
// Query params: all (опционально, true - включая завершившиеся)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	all := false
	if raw := r.URL.Query().Get("all"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /tournaments - Invalid all flag: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		all = parsed
	}

	var (
		result *models.TournamentListResponse
		err    error
	)
	if all {
		result, err = h.service.List(r.Context())
	} else {
		result, err = h.service.Active(r.Context())
	}
	if err != nil {
		h.logger.Error("GET /tournaments - Failed to list tournaments: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /tournaments - Tournaments retrieved: all=%t, count=%d", all, result.Count)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/tournaments/{tournamentId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	tournamentID := mux.Vars(r)["tournamentId"]

	result, err := h.service.GetByID(r.Context(), tournamentID)
	if err != nil {
		switch {
		case errors.Is(err, tournaments.ErrTournamentNotFound):
			h.logger.Warn("GET /tournaments/{id} - Tournament not found: tournament_id=%s", tournamentID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /tournaments/{id} - Failed to get tournament: tournament_id=%s, error=%v",
				tournamentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /tournaments/{id} - Tournament retrieved: tournament_id=%s", tournamentID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
