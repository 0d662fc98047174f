package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DartsBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-DartsBookingService/internal/api/middleware"
	getAvailableSlots "github.com/m04kA/SMC-DartsBookingService/internal/usecase/get_available_slots"
)

const (
	msgMissingWeek     = "неделя обязательна"
	msgInvalidWeek     = "некорректная неделя, ожидается понедельник в формате YYYY-MM-DD"
	msgMachineNotFound = "автомат не найден"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/grid
// Query params: week (обязательно, YYYY-MM-DD), machine (опционально)
// Анонимный посетитель видит сетку без собственных бронирований
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	week := r.URL.Query().Get("week")
	if week == "" {
		h.logger.Warn("GET /bookings/grid - Missing week")
		handlers.RespondBadRequest(w, msgMissingWeek)
		return
	}

	userID, _ := middleware.GetUserID(r.Context())
	useCaseReq := &getAvailableSlots.Request{
		UserID:    userID,
		WeekStart: week,
		MachineID: r.URL.Query().Get("machine"),
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /bookings/grid - Invalid week: week=%s, error=%v", week, err)
			handlers.RespondBadRequest(w, msgInvalidWeek)

		case errors.Is(err, getAvailableSlots.ErrMachineNotFound):
			h.logger.Warn("GET /bookings/grid - Machine not found: machine_id=%s", useCaseReq.MachineID)
			handlers.RespondNotFound(w, msgMachineNotFound)

		default:
			h.logger.Error("GET /bookings/grid - Failed to build grid: week=%s, error=%v", week, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/grid - Grid retrieved successfully: week=%s, machine_id=%s, user_id=%s",
		result.WeekStart, result.MachineID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
