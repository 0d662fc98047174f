package quote_price

import (
	"github.com/m04kA/SMC-DartsBookingService/internal/domain"
	"github.com/m04kA/SMC-DartsBookingService/internal/pricing"
)

// Request модель запроса расчета стоимости выбранных слотов
type Request struct {
	UserID    string        // пусто для анонимного посетителя
	WeekStart string        `validate:"required,datetime=2006-01-02"`
	OfferID   string        // ID предложения (опционально)
	Slots     []domain.Slot `validate:"dive"`
}

// Response модель ответа с расчетом
type Response struct {
	Quote          pricing.Quote
	Currency       string
	EligibleOffers []domain.SpecialOffer // предложения, которые пользователь может выбрать
}
