package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DartsBookingService/internal/availability"
	"github.com/m04kA/SMC-DartsBookingService/internal/domain"
	"github.com/m04kA/SMC-DartsBookingService/pkg/txmanager"
)

var (
	// ErrUserNotFound возвращается, когда пользователь не зарегистрирован
	ErrUserNotFound = errors.New("create_booking: user not found")

	// ErrUserBlocked возвращается, когда пользователь заблокирован администратором
	ErrUserBlocked = errors.New("create_booking: user is blocked")

	// ErrMachineNotFound возвращается, когда машина не настроена
	ErrMachineNotFound = errors.New("create_booking: machine not found")

	// ErrSlotUnavailable возвращается, когда слот нельзя забронировать
	// (закрыто, дата заблокирована, прошлое, слишком далеко, турнир или слот занят)
	ErrSlotUnavailable = errors.New("create_booking: slot is not available")

	// ErrOfferNotEligible возвращается, когда предложение недоступно пользователю
	ErrOfferNotEligible = errors.New("create_booking: offer is not eligible")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrConcurrentUpdate возвращается, когда параллельная транзакция изменила те же данные
	ErrConcurrentUpdate = txmanager.ErrSerializationFailure

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// SlotUnavailableError указывает, какой слот отклонен и почему
type SlotUnavailableError struct {
	Slot   domain.Slot
	Reason availability.Status
}

func (e *SlotUnavailableError) Error() string {
	return fmt.Sprintf("%v: day=%d hour=%d is %s", ErrSlotUnavailable, e.Slot.DayIndex, e.Slot.Hour, e.Reason)
}

func (e *SlotUnavailableError) Unwrap() error {
	return ErrSlotUnavailable
}
