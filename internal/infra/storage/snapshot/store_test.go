package snapshot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DartsBookingService/internal/domain"
)

func TestStore_EmptySnapshots(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryRepository())

	appointments, err := store.Appointments(ctx)
	require.NoError(t, err)
	assert.Empty(t, appointments)

	tournaments, err := store.Tournaments(ctx)
	require.NoError(t, err)
	assert.Empty(t, tournaments)

	settings, err := store.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), settings)

	user, err := store.User(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestStore_SettingsBackFillsMissingFields(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryRepository()
	require.NoError(t, kv.Put(ctx, domain.KeySettings, []byte(`{"currency":"HRK","blockedDates":["2026-12-25"]}`)))

	settings, err := NewStore(kv).Settings(ctx)
	require.NoError(t, err)

	assert.Equal(t, "HRK", settings.Currency)
	assert.Equal(t, 15.0, settings.BasePrice)
	assert.Len(t, settings.Machines, 1)
	assert.NotEmpty(t, settings.ConsecutiveDiscountTiers)
	assert.Equal(t, []string{"2026-12-25"}, settings.BlockedDates)
	assert.NotNil(t, settings.SpecialOffers)
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryRepository())

	start := time.Date(2026, 10, 20, 18, 0, 0, 0, time.UTC)
	tournaments := []domain.Tournament{{
		ID:     "t1",
		Name:   "Cup",
		Start:  start,
		End:    start.Add(2 * time.Hour),
		Format: domain.FormatSingle,
		Status: domain.TournamentOpen,
		Prizes: []domain.TournamentPrize{
			{Rank: 1, Type: domain.PrizeFreeSlot, Value: 1},
			{Rank: 3, Type: domain.PrizeFreeDrink, Product: "Beer"},
		},
	}}
	require.NoError(t, store.SaveTournaments(ctx, tournaments))

	loaded, err := store.Tournaments(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.True(t, loaded[0].Start.Equal(start))
	assert.Equal(t, tournaments[0].Prizes, loaded[0].Prizes)
}

func TestStore_DecodeError(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryRepository()
	require.NoError(t, kv.Put(ctx, domain.KeyAppointments, []byte(`{broken`)))

	_, err := NewStore(kv).Appointments(ctx)
	require.ErrorIs(t, err, ErrDecode)
}

func TestMemoryRepository_CopiesPayload(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryRepository()

	payload := []byte(`[]`)
	require.NoError(t, kv.Put(ctx, "k", payload))
	payload[0] = 'x'

	stored, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), stored)

	_, err = kv.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrSnapshotNotFound)
}
