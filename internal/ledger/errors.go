package ledger

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DartsBookingService/internal/domain"
)

var (
	// ErrAppointmentNotFound возвращается, когда бронирование с указанным id отсутствует
	ErrAppointmentNotFound = errors.New("ledger: appointment not found")

	// ErrTooLate возвращается при попытке отменить слот позже допустимого срока
	ErrTooLate = errors.New("ledger: too late to cancel")

	// ErrOfferNotEligible возвращается, когда предложение недоступно пользователю
	ErrOfferNotEligible = errors.New("ledger: offer is not eligible")

	// ErrSlotTaken возвращается, когда слот на машине уже занят
	ErrSlotTaken = errors.New("ledger: slot already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("ledger: invalid input data")
)

// TooLateError отказ в отмене с количеством часов, оставшихся до начала слота
type TooLateError struct {
	HoursLeft float64
}

func (e *TooLateError) Error() string {
	return fmt.Sprintf("%v: %s", ErrTooLate, e.Remaining())
}

func (e *TooLateError) Unwrap() error {
	return ErrTooLate
}

// Remaining оставшееся время, округленное до десятых часа
func (e *TooLateError) Remaining() string {
	return fmt.Sprintf("%.1fh remaining", e.HoursLeft)
}

// SlotTakenError слот уже занят на машине или повторяется в запросе
type SlotTakenError struct {
	Slot      domain.Slot
	MachineID string
	Duplicate bool
}

func (e *SlotTakenError) Error() string {
	if e.Duplicate {
		return fmt.Sprintf("%v: duplicate slot day=%d hour=%d", ErrSlotTaken, e.Slot.DayIndex, e.Slot.Hour)
	}
	return fmt.Sprintf("%v: day=%d hour=%d machine=%s", ErrSlotTaken, e.Slot.DayIndex, e.Slot.Hour, e.MachineID)
}

func (e *SlotTakenError) Unwrap() error {
	return ErrSlotTaken
}
