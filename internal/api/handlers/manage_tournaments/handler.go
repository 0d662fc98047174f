package manage_tournaments

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DartsBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-DartsBookingService/internal/service/tournaments"
	"github.com/m04kA/SMC-DartsBookingService/internal/service/tournaments/models"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidInput          = "некорректные данные турнира"
	msgNotFound              = "турнир не найден"
	msgMatchNotFound         = "матч не найден"
	msgParticipantNotFound   = "участник не найден"
	msgInvalidStatus         = "действие недоступно в текущем статусе турнира"
	msgNotEnoughParticipants = "для старта нужно минимум два участника"
	msgInvalidWinner         = "победитель не играет в этом матче"
	msgPrizesUnavailable     = "призы нельзя выдать"
	msgNoPrizes              = "нет призов для выдачи"
)

// Handler администрирования турниров. Маршруты защищены middleware.RequireAdmin.
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

// Create POST /api/v1/admin/tournaments
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const route = "POST /admin/tournaments"

	var req models.CreateTournamentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondError(w, route, err)
		return
	}

	h.logger.Info("%s - Tournament created: tournament_id=%s", route, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Delete DELETE /api/v1/admin/tournaments/{tournamentId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const route = "DELETE /admin/tournaments/{id}"
	tournamentID := mux.Vars(r)["tournamentId"]

	if err := h.service.Delete(r.Context(), tournamentID); err != nil {
		h.respondError(w, route, err)
		return
	}

	h.logger.Info("%s - Tournament deleted: tournament_id=%s", route, tournamentID)
	handlers.RespondNoContent(w)
}

// UpdateSeed PUT /api/v1/admin/tournaments/{tournamentId}/participants/{participantId}/seed
func (h *Handler) UpdateSeed(w http.ResponseWriter, r *http.Request) {
	const route = "PUT /admin/tournaments/{id}/participants/{id}/seed"
	vars := mux.Vars(r)

	var req models.UpdateSeedRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateSeed(r.Context(), vars["tournamentId"], vars["participantId"], &req)
	h.respond(w, route, result, err)
}

// AutoSeed POST /api/v1/admin/tournaments/{tournamentId}/auto-seed
func (h *Handler) AutoSeed(w http.ResponseWriter, r *http.Request) {
	const route = "POST /admin/tournaments/{id}/auto-seed"

	result, err := h.service.AutoSeed(r.Context(), mux.Vars(r)["tournamentId"])
	h.respond(w, route, result, err)
}

// Start POST /api/v1/admin/tournaments/{tournamentId}/start
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	const route = "POST /admin/tournaments/{id}/start"

	result, err := h.service.Start(r.Context(), mux.Vars(r)["tournamentId"])
	h.respond(w, route, result, err)
}

// Advance PUT /api/v1/admin/tournaments/{tournamentId}/matches/{matchId}/winner
func (h *Handler) Advance(w http.ResponseWriter, r *http.Request) {
	const route = "PUT /admin/tournaments/{id}/matches/{id}/winner"
	vars := mux.Vars(r)

	var req models.AdvanceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Advance(r.Context(), vars["tournamentId"], vars["matchId"], &req)
	h.respond(w, route, result, err)
}

// DistributePrizes POST /api/v1/admin/tournaments/{tournamentId}/prizes
// Отсутствие призов - информационный ответ, а не ошибка
func (h *Handler) DistributePrizes(w http.ResponseWriter, r *http.Request) {
	const route = "POST /admin/tournaments/{id}/prizes"
	tournamentID := mux.Vars(r)["tournamentId"]

	result, err := h.service.DistributePrizes(r.Context(), tournamentID)
	if err != nil {
		if errors.Is(err, tournaments.ErrNoPrizes) {
			h.logger.Info("%s - No prizes to distribute: tournament_id=%s", route, tournamentID)
			handlers.RespondMessage(w, msgNoPrizes)
			return
		}
		h.respondError(w, route, err)
		return
	}

	h.logger.Info("%s - Prizes distributed: tournament_id=%s, offers=%d", route, tournamentID, result.Count)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respond(w http.ResponseWriter, route string, result *models.TournamentResponse, err error) {
	if err != nil {
		h.respondError(w, route, err)
		return
	}

	h.logger.Info("%s - Tournament updated: tournament_id=%s, status=%s", route, result.ID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, tournaments.ErrTournamentNotFound):
		h.logger.Warn("%s - Tournament not found: %v", route, err)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, tournaments.ErrMatchNotFound):
		h.logger.Warn("%s - Match not found: %v", route, err)
		handlers.RespondNotFound(w, msgMatchNotFound)

	case errors.Is(err, tournaments.ErrParticipantNotFound):
		h.logger.Warn("%s - Participant not found: %v", route, err)
		handlers.RespondNotFound(w, msgParticipantNotFound)

	case errors.Is(err, tournaments.ErrInvalidStatus):
		h.logger.Warn("%s - Invalid status: %v", route, err)
		handlers.RespondConflict(w, msgInvalidStatus)

	case errors.Is(err, tournaments.ErrNotEnoughParticipants):
		h.logger.Warn("%s - Not enough participants: %v", route, err)
		handlers.RespondConflict(w, msgNotEnoughParticipants)

	case errors.Is(err, tournaments.ErrInvalidWinner):
		h.logger.Warn("%s - Invalid winner: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidWinner)

	case errors.Is(err, tournaments.ErrPrizesUnavailable):
		h.logger.Warn("%s - Prizes unavailable: %v", route, err)
		handlers.RespondConflict(w, msgPrizesUnavailable)

	case errors.Is(err, tournaments.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Failed: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
