package pricing

import (
	"sort"

	"github.com/m04kA/SMC-DartsBookingService/internal/domain"
)

// ResolveTier returns the tier with the largest threshold that count reaches.
// The input order is irrelevant: tiers are sorted here on every call because
// admin edits pass them around unsorted.
func ResolveTier(tiers []domain.DiscountTier, count int) (domain.DiscountTier, bool) {
	sorted := append([]domain.DiscountTier(nil), tiers...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Threshold > sorted[j].Threshold
	})

	for _, tier := range sorted {
		if count >= tier.Threshold {
			return tier, true
		}
	}
	return domain.DiscountTier{}, false
}
