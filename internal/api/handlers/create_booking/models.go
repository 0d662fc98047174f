package create_booking

import (
	"github.com/m04kA/SMC-DartsBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-DartsBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	WeekStart string        `json:"weekStart"`
	MachineID string        `json:"machineId"`
	OfferID   *string       `json:"offerId,omitempty"`
	Slots     []domain.Slot `json:"slots"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Appointments []domain.Appointment `json:"appointments"`
	Total        float64              `json:"total"`
	Currency     string               `json:"currency"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID string) *createBooking.Request {
	offerID := ""
	if r.OfferID != nil {
		offerID = *r.OfferID
	}

	return &createBooking.Request{
		UserID:    userID,
		WeekStart: r.WeekStart,
		MachineID: r.MachineID,
		OfferID:   offerID,
		Slots:     r.Slots,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		Appointments: resp.Appointments,
		Total:        resp.Total,
		Currency:     resp.Currency,
	}
}
