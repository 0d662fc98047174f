package pricing

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DartsBookingService/internal/domain"
)

func TestResolveTier(t *testing.T) {
	tiers := []domain.DiscountTier{
		{Threshold: 5, Discount: 20},
		{Threshold: 3, Discount: 10},
		{Threshold: 8, Discount: 30},
	}

	tests := []struct {
		name     string
		count    int
		wantOK   bool
		wantTier int
	}{
		{name: "zero count", count: 0, wantOK: false},
		{name: "below lowest", count: 2, wantOK: false},
		{name: "exact lowest", count: 3, wantOK: true, wantTier: 3},
		{name: "between tiers", count: 4, wantOK: true, wantTier: 3},
		{name: "middle tier", count: 5, wantOK: true, wantTier: 5},
		{name: "above highest", count: 12, wantOK: true, wantTier: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier, ok := ResolveTier(tiers, tt.count)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantTier, tier.Threshold)
			}
		})
	}
}

func TestResolveTier_DoesNotReorderInput(t *testing.T) {
	tiers := []domain.DiscountTier{{Threshold: 3, Discount: 10}, {Threshold: 5, Discount: 20}}

	_, ok := ResolveTier(tiers, 6)
	require.True(t, ok)

	assert.Equal(t, 3, tiers[0].Threshold)
	assert.Equal(t, 5, tiers[1].Threshold)
}

func TestResolveTier_Monotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		tiers := make([]domain.DiscountTier, rng.Intn(6))
		for j := range tiers {
			tiers[j] = domain.DiscountTier{Threshold: 1 + rng.Intn(10), Discount: float64(rng.Intn(50))}
		}
		count := rng.Intn(12)

		tier, ok := ResolveTier(tiers, count)

		best := -1
		for _, candidate := range tiers {
			if candidate.Threshold <= count && candidate.Threshold > best {
				best = candidate.Threshold
			}
		}
		if best == -1 {
			assert.False(t, ok, "count=%d tiers=%v", count, tiers)
			continue
		}
		require.True(t, ok, "count=%d tiers=%v", count, tiers)
		assert.LessOrEqual(t, tier.Threshold, count)
		assert.Equal(t, best, tier.Threshold)
	}
}
