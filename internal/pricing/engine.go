package pricing

import (
	"sort"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-DartsBookingService/internal/domain"
)

// QuoteRequest is everything the engine needs to price a set of candidate slots
type QuoteRequest struct {
	Slots        []domain.Slot
	OfferID      string
	Offers       []domain.SpecialOffer // offers the user is eligible for
	Settings     domain.AppSettings
	WeekStart    string
	User         *domain.User // nil for anonymous visitors
	Appointments []domain.Appointment
}

// QuoteLine is the offer-adjusted price of one candidate slot, before the bulk discount
type QuoteLine struct {
	Slot  domain.Slot `json:"slot"`
	Price float64     `json:"price"`
}

// DayQuote is the priced group of candidate slots of one day
type DayQuote struct {
	DayIndex      int                  `json:"dayIndex"`
	Count         int                  `json:"count"`
	ExistingCount int                  `json:"existingCount"`
	Subtotal      float64              `json:"subtotal"`
	Tier          *domain.DiscountTier `json:"tier,omitempty"`
	Total         float64              `json:"total"`
}

// Quote is the result of pricing a candidate booking
type Quote struct {
	Lines []QuoteLine          `json:"lines"`
	Days  []DayQuote           `json:"days"`
	Offer *domain.SpecialOffer `json:"offer,omitempty"`
	Total float64              `json:"total"`
}

type dayGroup struct {
	count    int
	subtotal decimal.Decimal
}

// ComputeTotal returns the price of the candidate slots rounded to cents
func ComputeTotal(req QuoteRequest) float64 {
	return Compute(req).Total
}

// Compute prices the candidate slots: offer per slot, then the bulk tier per day on the
// day subtotal. The bulk tier counts the user's existing bookings of that day and week.
//
// The quote is an estimate. Once booked, slots that carry an offer keep their offer price
// and the ledger reprices only the other slots of the day with the bulk tier, so with a
// fixed_price or discount_percent offer the booked total can be higher than Total.
func Compute(req QuoteRequest) Quote {
	slots := append([]domain.Slot(nil), req.Slots...)
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].Ordinal() < slots[j].Ordinal()
	})

	offer := FindOffer(req.Offers, req.OfferID)
	freeSlotsRemaining := 0
	if offer != nil {
		freeSlotsRemaining = offer.FreeSlots()
	}

	basePrice := Money(req.Settings.BasePrice)
	groups := make(map[int]*dayGroup)
	lines := make([]QuoteLine, 0, len(slots))

	for _, slot := range slots {
		var price decimal.Decimal
		price, freeSlotsRemaining = ApplyOffer(basePrice, offer, freeSlotsRemaining)

		group, ok := groups[slot.DayIndex]
		if !ok {
			group = &dayGroup{subtotal: decimal.Zero}
			groups[slot.DayIndex] = group
		}
		group.count++
		group.subtotal = group.subtotal.Add(price)

		lines = append(lines, QuoteLine{Slot: slot, Price: RoundCents(price)})
	}

	days := lo.Keys(groups)
	sort.Ints(days)

	total := decimal.Zero
	dayQuotes := make([]DayQuote, 0, len(days))
	for _, dayIndex := range days {
		group := groups[dayIndex]
		existing := countExisting(req.Appointments, req.User, req.WeekStart, dayIndex)

		dayTotal := group.subtotal
		quote := DayQuote{
			DayIndex:      dayIndex,
			Count:         group.count,
			ExistingCount: existing,
			Subtotal:      RoundCents(group.subtotal),
		}
		if tier, ok := ResolveTier(req.Settings.ConsecutiveDiscountTiers, existing+group.count); ok {
			dayTotal = ApplyPercent(dayTotal, tier.Discount)
			quote.Tier = &tier
		}
		quote.Total = RoundCents(dayTotal)

		total = total.Add(dayTotal)
		dayQuotes = append(dayQuotes, quote)
	}

	return Quote{
		Lines: lines,
		Days:  dayQuotes,
		Offer: offer,
		Total: RoundCents(total),
	}
}

func countExisting(appointments []domain.Appointment, user *domain.User, weekStart string, dayIndex int) int {
	if user == nil {
		return 0
	}
	return lo.CountBy(appointments, func(a domain.Appointment) bool {
		return a.InDayGroup(user.ID, weekStart, dayIndex)
	})
}
