package get_loyalty

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DartsBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-DartsBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-DartsBookingService/internal/service/loyalty"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidParams = "некорректные параметры запроса"
)

type Handler struct {
	service LoyaltyService
	logger  Logger
}

func NewHandler(service LoyaltyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/me/loyalty
// Query params: week (опционально), slot (опционально, повторяется)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /me/loyalty - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(userID, query.Get("week"), query["slot"])
	if err != nil {
		h.logger.Warn("GET /me/loyalty - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.Status(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, loyalty.ErrInvalidInput):
			h.logger.Warn("GET /me/loyalty - Invalid week: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /me/loyalty - Failed to get status: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /me/loyalty - Status retrieved: user_id=%s, bookings=%d, badges=%d",
		userID, result.TotalBookings, len(result.Badges))
	handlers.RespondJSON(w, http.StatusOK, result)
}
