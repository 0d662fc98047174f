package update_settings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DartsBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-DartsBookingService/internal/service/settings"
	"github.com/m04kA/SMC-DartsBookingService/internal/service/settings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные настроек"
	msgMachineNotFound    = "автомат не найден"
	msgLastMachine        = "нельзя удалить последний автомат"
	msgCannotBlockToday   = "нельзя закрыть сегодняшний день"
)

// Handler изменения настроек площадки. Маршруты защищены middleware.RequireAdmin.
type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Update PUT /api/v1/admin/settings
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const route = "PUT /admin/settings"

	var req models.UpdateSettingsRequest
	if !h.decode(w, r, route, &req) {
		return
	}

	result, err := h.service.Update(r.Context(), &req)
	h.respond(w, route, result, err)
}

// UpdateDiscountTiers PUT /api/v1/admin/settings/discount-tiers
func (h *Handler) UpdateDiscountTiers(w http.ResponseWriter, r *http.Request) {
	const route = "PUT /admin/settings/discount-tiers"

	var req models.UpdateDiscountTiersRequest
	if !h.decode(w, r, route, &req) {
		return
	}

	result, err := h.service.UpdateDiscountTiers(r.Context(), &req)
	h.respond(w, route, result, err)
}

// AddMachine POST /api/v1/admin/settings/machines
func (h *Handler) AddMachine(w http.ResponseWriter, r *http.Request) {
	const route = "POST /admin/settings/machines"

	var req models.AddMachineRequest
	if !h.decode(w, r, route, &req) {
		return
	}

	result, err := h.service.AddMachine(r.Context(), &req)
	h.respond(w, route, result, err)
}

// RemoveMachine DELETE /api/v1/admin/settings/machines/{machineId}
func (h *Handler) RemoveMachine(w http.ResponseWriter, r *http.Request) {
	const route = "DELETE /admin/settings/machines/{id}"

	result, err := h.service.RemoveMachine(r.Context(), mux.Vars(r)["machineId"])
	h.respond(w, route, result, err)
}

// AddBlockedDate POST /api/v1/admin/settings/blocked-dates
func (h *Handler) AddBlockedDate(w http.ResponseWriter, r *http.Request) {
	const route = "POST /admin/settings/blocked-dates"

	var req models.BlockedDateRequest
	if !h.decode(w, r, route, &req) {
		return
	}

	result, err := h.service.AddBlockedDate(r.Context(), &req)
	h.respond(w, route, result, err)
}

// RemoveBlockedDate DELETE /api/v1/admin/settings/blocked-dates/{date}
func (h *Handler) RemoveBlockedDate(w http.ResponseWriter, r *http.Request) {
	const route = "DELETE /admin/settings/blocked-dates/{date}"

	req := models.BlockedDateRequest{Date: mux.Vars(r)["date"]}
	result, err := h.service.RemoveBlockedDate(r.Context(), &req)
	h.respond(w, route, result, err)
}

// UpdateLoyalty PUT /api/v1/admin/settings/loyalty
func (h *Handler) UpdateLoyalty(w http.ResponseWriter, r *http.Request) {
	const route = "PUT /admin/settings/loyalty"

	var req models.UpdateLoyaltyRequest
	if !h.decode(w, r, route, &req) {
		return
	}

	result, err := h.service.UpdateLoyalty(r.Context(), &req)
	h.respond(w, route, result, err)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, route string, dst interface{}) bool {
	if err := handlers.DecodeJSON(r, dst); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return false
	}
	return true
}

func (h *Handler) respond(w http.ResponseWriter, route string, result *models.SettingsResponse, err error) {
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrMachineNotFound):
			h.logger.Warn("%s - Machine not found: %v", route, err)
			handlers.RespondNotFound(w, msgMachineNotFound)

		case errors.Is(err, settings.ErrLastMachine):
			h.logger.Warn("%s - Last machine: %v", route, err)
			handlers.RespondConflict(w, msgLastMachine)

		case errors.Is(err, settings.ErrCannotBlockToday):
			h.logger.Warn("%s - Cannot block today: %v", route, err)
			handlers.RespondBadRequest(w, msgCannotBlockToday)

		case errors.Is(err, settings.ErrInvalidInput):
			h.logger.Warn("%s - Invalid data: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("%s - Failed to update settings: %v", route, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Settings updated successfully", route)
	handlers.RespondJSON(w, http.StatusOK, result)
}
