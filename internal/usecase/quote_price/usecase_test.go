package quote_price

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DartsBookingService/internal/domain"
	"github.com/m04kA/SMC-DartsBookingService/internal/infra/storage/snapshot"
	"github.com/m04kA/SMC-DartsBookingService/pkg/logger"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func newQuoteUseCase(t *testing.T) *UseCase {
	t.Helper()
	ctx := context.Background()
	store := snapshot.NewStore(snapshot.NewMemoryRepository())

	require.NoError(t, store.SaveUsers(ctx, []domain.User{{ID: "u1", Name: "Robin"}}))

	settings := domain.DefaultSettings()
	settings.ConsecutiveDiscountTiers = []domain.DiscountTier{{Threshold: 3, Discount: 10}}
	settings.SpecialOffers = []domain.SpecialOffer{
		{
			ID: "free", Type: domain.OfferFreeSlot, Value: 1, TargetUserID: "u1",
			StartDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 10, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			ID: "template", Type: domain.OfferFreeSlot, Value: 1, IsTemplate: true,
			StartDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 10, 31, 0, 0, 0, 0, time.UTC),
		},
	}
	require.NoError(t, store.SaveSettings(ctx, settings))

	require.NoError(t, store.SaveAppointments(ctx, []domain.Appointment{
		{ID: "a1", UserID: "u1", WeekStart: "2026-10-12", DayIndex: 3, Hour: 10, MachineID: "dart-1", Price: 15},
		{ID: "a2", UserID: "u1", WeekStart: "2026-10-12", DayIndex: 3, Hour: 11, MachineID: "dart-1", Price: 15},
	}))

	return NewUseCase(store, logger.NewNop()).
		WithTimeProvider(fixedTime{now: time.Date(2026, 10, 13, 9, 0, 0, 0, time.UTC)})
}

func TestExecute_CountsExistingBookings(t *testing.T) {
	uc := newQuoteUseCase(t)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:    "u1",
		WeekStart: "2026-10-12",
		Slots:     []domain.Slot{{DayIndex: 3, Hour: 18}},
	})
	require.NoError(t, err)

	assert.Equal(t, 13.5, resp.Quote.Total)
	assert.Equal(t, "EUR", resp.Currency)
	require.Len(t, resp.EligibleOffers, 1)
	assert.Equal(t, "free", resp.EligibleOffers[0].ID)
}

func TestExecute_AnonymousVisitor(t *testing.T) {
	uc := newQuoteUseCase(t)

	resp, err := uc.Execute(context.Background(), &Request{
		WeekStart: "2026-10-12",
		OfferID:   "free",
		Slots:     []domain.Slot{{DayIndex: 3, Hour: 18}},
	})
	require.NoError(t, err)

	assert.Equal(t, 15.0, resp.Quote.Total)
	assert.Empty(t, resp.EligibleOffers)
}

func TestExecute_EmptySelection(t *testing.T) {
	uc := newQuoteUseCase(t)

	resp, err := uc.Execute(context.Background(), &Request{UserID: "u1", WeekStart: "2026-10-12"})
	require.NoError(t, err)
	assert.Zero(t, resp.Quote.Total)
}

func TestExecute_InvalidWeek(t *testing.T) {
	uc := newQuoteUseCase(t)

	_, err := uc.Execute(context.Background(), &Request{WeekStart: "2026-10-13"})
	require.ErrorIs(t, err, ErrInvalidInput)
}
