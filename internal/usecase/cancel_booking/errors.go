package cancel_booking

import (
	"errors"

	"github.com/m04kA/SMC-DartsBookingService/pkg/txmanager"
)

var (
	// ErrAppointmentNotFound возвращается, когда бронирование не найдено
	ErrAppointmentNotFound = errors.New("cancel_booking: appointment not found")

	// ErrUserNotFound возвращается, когда пользователь не зарегистрирован
	ErrUserNotFound = errors.New("cancel_booking: user not found")

	// ErrAccessDenied возвращается, когда пользователь отменяет чужое бронирование
	ErrAccessDenied = errors.New("cancel_booking: access denied")

	// ErrTooLate возвращается, когда до начала слота осталось меньше допустимого
	ErrTooLate = errors.New("cancel_booking: too late to cancel")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrConcurrentUpdate возвращается, когда параллельная транзакция изменила те же данные
	ErrConcurrentUpdate = txmanager.ErrSerializationFailure

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
