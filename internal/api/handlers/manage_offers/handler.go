package manage_offers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DartsBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-DartsBookingService/internal/service/offers"
	"github.com/m04kA/SMC-DartsBookingService/internal/service/offers/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные предложения"
	msgNotFound           = "предложение не найдено"
	msgNotTemplate        = "предложение не является шаблоном"
	msgUserNotFound       = "пользователь не найден"
)

// Handler администрирования специальных предложений. Маршруты защищены middleware.RequireAdmin.
type Handler struct {
	service OfferService
	logger  Logger
}

func NewHandler(service OfferService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Templates GET /api/v1/admin/offers
func (h *Handler) Templates(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Templates(r.Context())
	if err != nil {
		h.respondError(w, "GET /admin/offers", err)
		return
	}

	h.logger.Info("GET /admin/offers - Templates retrieved: count=%d", result.Count)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// CreateTemplate POST /api/v1/admin/offers
func (h *Handler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	const route = "POST /admin/offers"

	var req models.CreateTemplateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateTemplate(r.Context(), &req)
	if err != nil {
		h.respondError(w, route, err)
		return
	}

	h.logger.Info("%s - Template created: offer_id=%s", route, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// SendTemplate POST /api/v1/admin/offers/{offerId}/send
func (h *Handler) SendTemplate(w http.ResponseWriter, r *http.Request) {
	const route = "POST /admin/offers/{id}/send"
	offerID := mux.Vars(r)["offerId"]

	var req models.SendTemplateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SendTemplate(r.Context(), offerID, &req)
	if err != nil {
		h.respondError(w, route, err)
		return
	}

	h.logger.Info("%s - Template sent: offer_id=%s, recipients=%d", route, offerID, result.Count)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Recipients GET /api/v1/admin/offers/{offerId}/recipients
func (h *Handler) Recipients(w http.ResponseWriter, r *http.Request) {
	const route = "GET /admin/offers/{id}/recipients"
	offerID := mux.Vars(r)["offerId"]

	result, err := h.service.Recipients(r.Context(), offerID)
	if err != nil {
		h.respondError(w, route, err)
		return
	}

	h.logger.Info("%s - Recipients retrieved: offer_id=%s, count=%d", route, offerID, result.Count)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/admin/offers/{offerId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const route = "DELETE /admin/offers/{id}"
	offerID := mux.Vars(r)["offerId"]

	if err := h.service.Delete(r.Context(), offerID); err != nil {
		h.respondError(w, route, err)
		return
	}

	h.logger.Info("%s - Offer deleted: offer_id=%s", route, offerID)
	handlers.RespondNoContent(w)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, offers.ErrOfferNotFound):
		h.logger.Warn("%s - Offer not found: %v", route, err)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, offers.ErrNotTemplate):
		h.logger.Warn("%s - Not a template: %v", route, err)
		handlers.RespondBadRequest(w, msgNotTemplate)

	case errors.Is(err, offers.ErrUserNotFound):
		h.logger.Warn("%s - User not found: %v", route, err)
		handlers.RespondNotFound(w, msgUserNotFound)

	case errors.Is(err, offers.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Failed: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
