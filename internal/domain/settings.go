package domain

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// DiscountTier maps "slots booked this day" to a percent-off
type DiscountTier struct {
	Threshold int     `json:"threshold"`
	Discount  float64 `json:"discount"` // percent 0-100
}

// Label returns the human readable rule stored on discounted appointments
func (t DiscountTier) Label() string {
	return fmt.Sprintf("Bulk %d+ (-%s%%)", t.Threshold, strconv.FormatFloat(t.Discount, 'f', -1, 64))
}

// LoyaltyTier is a badge earned after a number of bookings
type LoyaltyTier struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	BookingsRequired int    `json:"bookingsRequired"`
	Icon             string `json:"icon"`
	Color            string `json:"color"`
	Enabled          bool   `json:"enabled"`
}

// LoyaltyProgram groups the badge tiers
type LoyaltyProgram struct {
	Enabled bool          `json:"enabled"`
	Tiers   []LoyaltyTier `json:"tiers"`
}

// Earned returns the enabled badges reached with total bookings, highest first
func (p LoyaltyProgram) Earned(total int) []LoyaltyTier {
	earned := make([]LoyaltyTier, 0)
	if !p.Enabled {
		return earned
	}
	for _, t := range p.Tiers {
		if t.Enabled && total >= t.BookingsRequired {
			earned = append(earned, t)
		}
	}
	sort.SliceStable(earned, func(i, j int) bool {
		return earned[i].BookingsRequired > earned[j].BookingsRequired
	})
	return earned
}

// Next returns the closest enabled badge not reached yet
func (p LoyaltyProgram) Next(total int) (LoyaltyTier, bool) {
	var (
		next  LoyaltyTier
		found bool
	)
	if !p.Enabled {
		return next, false
	}
	for _, t := range p.Tiers {
		if !t.Enabled || total >= t.BookingsRequired {
			continue
		}
		if !found || t.BookingsRequired < next.BookingsRequired {
			next, found = t, true
		}
	}
	return next, found
}

// WorkingHour is the opening window of one weekday, [Start, End) in whole hours
type WorkingHour struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// IsOpen returns true if the venue is open at the given hour
func (w WorkingHour) IsOpen(hour int) bool {
	return hour >= w.Start && hour < w.End
}

// Machine is one bookable dart machine
type Machine struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AppSettings is the venue configuration owned by the admin surface
type AppSettings struct {
	BasePrice                float64             `json:"basePrice"`
	Currency                 string              `json:"currency"`
	ConsecutiveDiscountTiers []DiscountTier      `json:"consecutiveDiscountTiers"`
	LoyaltyProgram           LoyaltyProgram      `json:"loyaltyProgram"`
	WorkingHours             map[int]WorkingHour `json:"workingHours"` // key: dayIndex
	BlockedDates             []string            `json:"blockedDates"` // YYYY-MM-DD
	Machines                 []Machine           `json:"machines"`
	SpecialOffers            []SpecialOffer      `json:"specialOffers"`
}

// DefaultSettings returns the configuration used before an admin saved anything
func DefaultSettings() AppSettings {
	hours := make(map[int]WorkingHour, DaysPerWeek)
	for day := 0; day < DaysPerWeek; day++ {
		hours[day] = WorkingHour{Start: 10, End: 23}
	}

	return AppSettings{
		BasePrice: DefaultBasePrice,
		Currency:  DefaultCurrency,
		ConsecutiveDiscountTiers: []DiscountTier{
			{Threshold: 3, Discount: 10},
			{Threshold: 5, Discount: 20},
		},
		LoyaltyProgram: LoyaltyProgram{
			Enabled: true,
			Tiers: []LoyaltyTier{
				{ID: "tier-bronze", Name: "Bronze Arrow", BookingsRequired: 5, Icon: "ph-medal", Color: "text-amber-600", Enabled: true},
				{ID: "tier-silver", Name: "Silver Arrow", BookingsRequired: 15, Icon: "ph-medal", Color: "text-slate-300", Enabled: true},
				{ID: "tier-gold", Name: "Golden Arrow", BookingsRequired: 30, Icon: "ph-crown", Color: "text-yellow-400", Enabled: true},
			},
		},
		WorkingHours:  hours,
		BlockedDates:  []string{},
		Machines:      []Machine{{ID: "dart-1", Name: "Machine 1"}},
		SpecialOffers: []SpecialOffer{},
	}
}

// ApplyDefaults back-fills fields missing from an older stored snapshot
func (s *AppSettings) ApplyDefaults() {
	defaults := DefaultSettings()
	if len(s.Machines) == 0 {
		s.Machines = defaults.Machines
	}
	if s.SpecialOffers == nil {
		s.SpecialOffers = []SpecialOffer{}
	}
	if s.BasePrice == 0 {
		s.BasePrice = defaults.BasePrice
	}
	if s.ConsecutiveDiscountTiers == nil {
		s.ConsecutiveDiscountTiers = defaults.ConsecutiveDiscountTiers
	}
	if s.WorkingHours == nil {
		s.WorkingHours = defaults.WorkingHours
	}
	if s.BlockedDates == nil {
		s.BlockedDates = []string{}
	}
	if s.Currency == "" {
		s.Currency = defaults.Currency
	}
}

// Clone returns a deep copy so callers never share slices with a stored snapshot
func (s AppSettings) Clone() AppSettings {
	out := s
	out.ConsecutiveDiscountTiers = append([]DiscountTier(nil), s.ConsecutiveDiscountTiers...)
	out.LoyaltyProgram.Tiers = append([]LoyaltyTier(nil), s.LoyaltyProgram.Tiers...)
	out.BlockedDates = append([]string(nil), s.BlockedDates...)
	out.Machines = append([]Machine(nil), s.Machines...)
	out.SpecialOffers = append([]SpecialOffer(nil), s.SpecialOffers...)
	if s.WorkingHours != nil {
		out.WorkingHours = make(map[int]WorkingHour, len(s.WorkingHours))
		for day, wh := range s.WorkingHours {
			out.WorkingHours[day] = wh
		}
	}
	return out
}

// HasMachine returns true if the machine is configured
func (s *AppSettings) HasMachine(id string) bool {
	for _, m := range s.Machines {
		if m.ID == id {
			return true
		}
	}
	return false
}

// IsBlocked returns true if the date (YYYY-MM-DD) is closed by the admin
func (s *AppSettings) IsBlocked(date string) bool {
	for _, d := range s.BlockedDates {
		if d == date {
			return true
		}
	}
	return false
}

// OfferIndex returns the index of the offer in SpecialOffers or -1
func (s *AppSettings) OfferIndex(id string) int {
	for i := range s.SpecialOffers {
		if s.SpecialOffers[i].ID == id {
			return i
		}
	}
	return -1
}

// EligibleOffers returns the offers the user may redeem at the given moment
func (s *AppSettings) EligibleOffers(userID string, now time.Time) []SpecialOffer {
	eligible := make([]SpecialOffer, 0)
	for i := range s.SpecialOffers {
		if s.SpecialOffers[i].IsEligibleFor(userID, now) {
			eligible = append(eligible, s.SpecialOffers[i])
		}
	}
	return eligible
}
