package cancel_booking

import "github.com/m04kA/SMC-DartsBookingService/internal/domain"

// Request модель запроса на отмену бронирования
type Request struct {
	UserID        string // кто отменяет: владелец бронирования или администратор
	AppointmentID string
}

// Response модель ответа с отмененным бронированием
type Response struct {
	Cancelled     domain.Appointment
	OfferReopened bool // предложение снова доступно пользователю
}
