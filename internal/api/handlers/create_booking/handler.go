package create_booking

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-DartsBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-DartsBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-DartsBookingService/internal/availability"
	createBooking "github.com/m04kA/SMC-DartsBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgUserNotFound       = "пользователь не найден"
	msgUserBlocked        = "пользователь заблокирован"
	msgMachineNotFound    = "автомат не найден"
	msgSlotUnavailable    = "выбранный слот недоступен"
	msgOfferNotEligible   = "предложение недоступно"
	msgInvalidInput       = "некорректные параметры бронирования"
	msgConcurrent         = "слоты изменены параллельно, повторите попытку"
)

var slotReasons = map[availability.Status]string{
	availability.StatusBooked:     "уже занят",
	availability.StatusMine:       "уже забронирован вами",
	availability.StatusClosed:     "площадка закрыта",
	availability.StatusBlocked:    "дата заблокирована",
	availability.StatusPast:       "время уже прошло",
	availability.StatusTooFar:     "слишком далеко для бронирования",
	availability.StatusTournament: "проходит турнир",
}

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings - Slot unavailable: user_id=%s, error=%v", userID, err)
			handlers.RespondConflict(w, slotUnavailableMessage(err))

		case errors.Is(err, createBooking.ErrOfferNotEligible):
			h.logger.Warn("POST /bookings - Offer not eligible: user_id=%s, error=%v", userID, err)
			handlers.RespondConflict(w, msgOfferNotEligible)

		case errors.Is(err, createBooking.ErrMachineNotFound):
			h.logger.Warn("POST /bookings - Machine not found: machine_id=%s", req.MachineID)
			handlers.RespondNotFound(w, msgMachineNotFound)

		case errors.Is(err, createBooking.ErrUserNotFound):
			h.logger.Warn("POST /bookings - User not found: user_id=%s", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createBooking.ErrUserBlocked):
			h.logger.Warn("POST /bookings - User blocked: user_id=%s", userID)
			handlers.RespondForbidden(w, msgUserBlocked)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrConcurrentUpdate):
			h.logger.Warn("POST /bookings - Concurrent update: user_id=%s, error=%v", userID, err)
			handlers.RespondConflict(w, msgConcurrent)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: user_id=%s, slots=%d, total=%.2f",
		userID, len(result.Appointments), result.Total)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

// slotUnavailableMessage называет отклоненный слот и причину, если она известна
func slotUnavailableMessage(err error) string {
	var slotErr *createBooking.SlotUnavailableError
	if !errors.As(err, &slotErr) {
		return msgSlotUnavailable
	}
	reason, ok := slotReasons[slotErr.Reason]
	if !ok {
		reason = string(slotErr.Reason)
	}
	return fmt.Sprintf("%s: день %d, %02d:00 (%s)", msgSlotUnavailable, slotErr.Slot.DayIndex, slotErr.Slot.Hour, reason)
}
