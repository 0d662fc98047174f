package quote_price

import (
	"github.com/m04kA/SMC-DartsBookingService/internal/domain"
	"github.com/m04kA/SMC-DartsBookingService/internal/pricing"
	quotePrice "github.com/m04kA/SMC-DartsBookingService/internal/usecase/quote_price"
)

// QuoteRequest HTTP request model
type QuoteRequest struct {
	WeekStart string        `json:"weekStart"`
	OfferID   *string       `json:"offerId,omitempty"`
	Slots     []domain.Slot `json:"slots"`
}

// QuoteResponse HTTP response model
type QuoteResponse struct {
	pricing.Quote
	Currency       string                `json:"currency"`
	EligibleOffers []domain.SpecialOffer `json:"eligibleOffers"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *QuoteRequest) ToUseCaseRequest(userID string) *quotePrice.Request {
	offerID := ""
	if r.OfferID != nil {
		offerID = *r.OfferID
	}

	return &quotePrice.Request{
		UserID:    userID,
		WeekStart: r.WeekStart,
		OfferID:   offerID,
		Slots:     r.Slots,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *quotePrice.Response) *QuoteResponse {
	offers := resp.EligibleOffers
	if offers == nil {
		offers = []domain.SpecialOffer{}
	}

	return &QuoteResponse{
		Quote:          resp.Quote,
		Currency:       resp.Currency,
		EligibleOffers: offers,
	}
}
