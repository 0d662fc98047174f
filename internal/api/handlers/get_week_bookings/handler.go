package get_week_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DartsBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-DartsBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-DartsBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-DartsBookingService/internal/service/bookings/models"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgMissingWeek   = "неделя обязательна"
	msgInvalidWeek   = "некорректная неделя, ожидается понедельник в формате YYYY-MM-DD"
	msgForbidden     = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/bookings
// Query params: week (обязательно, YYYY-MM-DD), machine (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /admin/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	week := r.URL.Query().Get("week")
	if week == "" {
		h.logger.Warn("GET /admin/bookings - Missing week")
		handlers.RespondBadRequest(w, msgMissingWeek)
		return
	}

	serviceReq := &models.GetWeekBookingsRequest{
		UserID:    userID,
		WeekStart: week,
		MachineID: r.URL.Query().Get("machine"),
	}

	// Сервис сам проверит права администратора
	result, err := h.service.GetWeekBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /admin/bookings - Access denied: user_id=%s", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /admin/bookings - Invalid week: week=%s", week)
			handlers.RespondBadRequest(w, msgInvalidWeek)

		default:
			h.logger.Error("GET /admin/bookings - Failed to get bookings: week=%s, error=%v", week, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/bookings - Bookings retrieved successfully: week=%s, count=%d",
		week, result.Count)
	handlers.RespondJSON(w, http.StatusOK, result)
}
