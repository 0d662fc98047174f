package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-DartsBookingService/internal/domain"
)

func TestApplyOffer(t *testing.T) {
	base := decimal.NewFromInt(15)

	tests := []struct {
		name          string
		offer         *domain.SpecialOffer
		free          int
		wantPrice     string
		wantRemaining int
	}{
		{name: "no offer", offer: nil, wantPrice: "15"},
		{name: "fixed price", offer: &domain.SpecialOffer{Type: domain.OfferFixedPrice, Value: 9.99}, wantPrice: "9.99"},
		{name: "discount percent", offer: &domain.SpecialOffer{Type: domain.OfferDiscountPercent, Value: 20}, wantPrice: "12"},
		{name: "free drink keeps price", offer: &domain.SpecialOffer{Type: domain.OfferFreeDrink, Value: 1}, wantPrice: "15"},
		{name: "free slot consumed", offer: &domain.SpecialOffer{Type: domain.OfferFreeSlot, Value: 2}, free: 2, wantPrice: "0", wantRemaining: 1},
		{name: "free slot exhausted", offer: &domain.SpecialOffer{Type: domain.OfferFreeSlot, Value: 2}, free: 0, wantPrice: "15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, remaining := ApplyOffer(base, tt.offer, tt.free)
			assert.True(t, price.Equal(decimal.RequireFromString(tt.wantPrice)), "got %s", price)
			assert.Equal(t, tt.wantRemaining, remaining)
		})
	}
}

func TestFindOffer(t *testing.T) {
	offers := []domain.SpecialOffer{{ID: "a"}, {ID: "b"}}

	assert.Nil(t, FindOffer(offers, ""))
	assert.Nil(t, FindOffer(offers, "c"))

	found := FindOffer(offers, "b")
	if assert.NotNil(t, found) {
		assert.Equal(t, "b", found.ID)
		found.Used = true
		assert.False(t, offers[1].Used)
	}
}
