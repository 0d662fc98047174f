package get_my_offers

import (
	"net/http"

	"github.com/m04kA/SMC-DartsBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-DartsBookingService/internal/api/middleware"
)

const msgMissingUserID = "отсутствует ID пользователя"

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

// Handle GET /api/v1/me/offers
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /me/offers - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.EligibleOffers(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /me/offers - Failed to get offers: user_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /me/offers - Offers retrieved successfully: user_id=%s, count=%d", userID, result.Count)
	handlers.RespondJSON(w, http.StatusOK, result)
}
