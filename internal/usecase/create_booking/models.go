package create_booking

import "github.com/m04kA/SMC-DartsBookingService/internal/domain"

// Request модель запроса на бронирование набора слотов одной недели
type Request struct {
	UserID    string        `validate:"required"`
	WeekStart string        `validate:"required,datetime=2006-01-02"`
	MachineID string        `validate:"required"`
	OfferID   string        // ID предложения (опционально)
	Slots     []domain.Slot `validate:"required,min=1,dive"`
}

// Response модель ответа с созданными бронированиями
type Response struct {
	Appointments []domain.Appointment // Созданные бронирования с итоговыми ценами
	Total        float64              // Сумма по созданным бронированиям
	Currency     string
}
