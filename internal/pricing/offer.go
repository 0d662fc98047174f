package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-DartsBookingService/internal/domain"
)

// ApplyOffer prices a single slot under the active offer.
// Order: fixed_price overrides the base, discount_percent scales it, then a remaining
// free slot zeroes the price. free_drink never touches the slot price.
func ApplyOffer(basePrice decimal.Decimal, offer *domain.SpecialOffer, freeSlotsRemaining int) (decimal.Decimal, int) {
	price := basePrice

	if offer != nil {
		switch offer.Type {
		case domain.OfferFixedPrice:
			price = decimal.NewFromFloat(offer.Value)
		case domain.OfferDiscountPercent:
			price = ApplyPercent(basePrice, offer.Value)
		}
	}

	if freeSlotsRemaining > 0 {
		return decimal.Zero, freeSlotsRemaining - 1
	}
	return price, freeSlotsRemaining
}

// AdjustsPrice returns true if the offer changes slot prices at all
func AdjustsPrice(offer *domain.SpecialOffer) bool {
	if offer == nil {
		return false
	}
	return offer.Type == domain.OfferFixedPrice || offer.Type == domain.OfferDiscountPercent
}

// FindOffer returns the offer with the given id from the user's eligible set
func FindOffer(offers []domain.SpecialOffer, id string) *domain.SpecialOffer {
	if id == "" {
		return nil
	}
	for i := range offers {
		if offers[i].ID == id {
			offer := offers[i]
			return &offer
		}
	}
	return nil
}
