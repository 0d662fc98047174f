package cancel_booking

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DartsBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-DartsBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-DartsBookingService/internal/ledger"
	cancelBooking "github.com/m04kA/SMC-DartsBookingService/internal/usecase/cancel_booking"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgNotFound      = "бронирование не найдено"
	msgForbidden     = "доступ запрещен"
	msgTooLate       = "слишком поздно для отмены бронирования"
	msgUserNotFound  = "пользователь не найден"
	msgConcurrent    = "бронирование изменено параллельно, повторите попытку"
)

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/bookings/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID := mux.Vars(r)["appointmentId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /bookings/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &cancelBooking.Request{
		UserID:        userID,
		AppointmentID: appointmentID,
	})
	if err != nil {
		switch {
		case errors.Is(err, cancelBooking.ErrAppointmentNotFound):
			h.logger.Warn("DELETE /bookings/{id} - Booking not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cancelBooking.ErrAccessDenied):
			h.logger.Warn("DELETE /bookings/{id} - Access denied: appointment_id=%s, user_id=%s",
				appointmentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, cancelBooking.ErrTooLate):
			h.logger.Warn("DELETE /bookings/{id} - Too late to cancel: appointment_id=%s, error=%v", appointmentID, err)
			handlers.RespondConflict(w, tooLateMessage(err))

		case errors.Is(err, cancelBooking.ErrUserNotFound):
			h.logger.Warn("DELETE /bookings/{id} - User not found: user_id=%s", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, cancelBooking.ErrConcurrentUpdate):
			h.logger.Warn("DELETE /bookings/{id} - Concurrent update: appointment_id=%s, error=%v", appointmentID, err)
			handlers.RespondConflict(w, msgConcurrent)

		default:
			h.logger.Error("DELETE /bookings/{id} - Failed to cancel booking: appointment_id=%s, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /bookings/{id} - Booking cancelled successfully: appointment_id=%s, user_id=%s",
		appointmentID, userID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// tooLateMessage добавляет к отказу оставшееся до начала слота время
func tooLateMessage(err error) string {
	var tooLate *ledger.TooLateError
	if errors.As(err, &tooLate) {
		return fmt.Sprintf("%s (%s)", msgTooLate, tooLate.Remaining())
	}
	return msgTooLate
}
