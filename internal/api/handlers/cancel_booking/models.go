package cancel_booking

import (
	"github.com/m04kA/SMC-DartsBookingService/internal/domain"
	cancelBooking "github.com/m04kA/SMC-DartsBookingService/internal/usecase/cancel_booking"
)

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	Cancelled     domain.Appointment `json:"cancelled"`
	OfferReopened bool               `json:"offerReopened"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		Cancelled:     resp.Cancelled,
		OfferReopened: resp.OfferReopened,
	}
}
