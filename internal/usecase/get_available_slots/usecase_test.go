package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DartsBookingService/internal/availability"
	"github.com/m04kA/SMC-DartsBookingService/internal/domain"
	"github.com/m04kA/SMC-DartsBookingService/internal/infra/storage/snapshot"
	"github.com/m04kA/SMC-DartsBookingService/pkg/logger"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func newGridUseCase(t *testing.T) *UseCase {
	t.Helper()
	ctx := context.Background()
	store := snapshot.NewStore(snapshot.NewMemoryRepository())

	settings := domain.DefaultSettings()
	settings.Machines = append(settings.Machines, domain.Machine{ID: "dart-2", Name: "Machine 2"})
	settings.WorkingHours[0] = domain.WorkingHour{Start: 0, End: 0}
	settings.BlockedDates = []string{"2026-10-16"}
	require.NoError(t, store.SaveSettings(ctx, settings))

	require.NoError(t, store.SaveAppointments(ctx, []domain.Appointment{
		{ID: "a1", UserID: "u1", WeekStart: "2026-10-12", DayIndex: 3, Hour: 18, MachineID: "dart-1", Price: 13.5, DiscountRule: "Bulk 3+ (-10%)"},
		{ID: "a2", UserID: "u2", WeekStart: "2026-10-12", DayIndex: 3, Hour: 19, MachineID: "dart-1", Price: 15},
	}))

	return NewUseCase(store, time.UTC, domain.DefaultBookingHorizonDays, logger.NewNop()).
		WithTimeProvider(fixedTime{now: time.Date(2026, 10, 13, 9, 0, 0, 0, time.UTC)})
}

func slotAt(t *testing.T, resp *Response, dayIndex, hour int) Slot {
	t.Helper()
	for _, d := range resp.Days {
		if d.DayIndex != dayIndex {
			continue
		}
		for _, s := range d.Slots {
			if s.Hour == hour {
				return s
			}
		}
	}
	t.Fatalf("slot day=%d hour=%d not in grid", dayIndex, hour)
	return Slot{}
}

func TestExecute_WeekGrid(t *testing.T) {
	uc := newGridUseCase(t)

	resp, err := uc.Execute(context.Background(), &Request{UserID: "u1", WeekStart: "2026-10-12"})
	require.NoError(t, err)

	assert.Equal(t, "dart-1", resp.MachineID)
	assert.Equal(t, "EUR", resp.Currency)
	require.Len(t, resp.Days, 7)
	assert.Equal(t, 1, resp.Days[0].DayIndex)
	assert.Equal(t, "2026-10-12", resp.Days[0].Date)
	assert.Equal(t, 0, resp.Days[6].DayIndex)
	assert.Equal(t, "2026-10-18", resp.Days[6].Date)

	mine := slotAt(t, resp, 3, 18)
	assert.Equal(t, availability.StatusMine, mine.Status)
	assert.Equal(t, "a1", mine.AppointmentID)
	assert.Equal(t, 13.5, mine.Price)
	assert.Equal(t, "Bulk 3+ (-10%)", mine.DiscountRule)

	other := slotAt(t, resp, 3, 19)
	assert.Equal(t, availability.StatusBooked, other.Status)
	assert.Empty(t, other.AppointmentID)

	assert.Equal(t, availability.StatusPast, slotAt(t, resp, 1, 20).Status)
	assert.Equal(t, availability.StatusAvailable, slotAt(t, resp, 3, 10).Status)
	assert.Equal(t, availability.StatusBlocked, slotAt(t, resp, 5, 12).Status)
	assert.True(t, resp.Days[4].Blocked)
	assert.Len(t, resp.Days[0].Slots, 13)

	assert.False(t, resp.Days[6].Open)
	assert.Empty(t, resp.Days[6].Slots)
}

func TestExecute_OtherMachine(t *testing.T) {
	uc := newGridUseCase(t)

	resp, err := uc.Execute(context.Background(), &Request{WeekStart: "2026-10-12", MachineID: "dart-2"})
	require.NoError(t, err)

	assert.Equal(t, availability.StatusAvailable, slotAt(t, resp, 3, 18).Status)
}

func TestExecute_Errors(t *testing.T) {
	uc := newGridUseCase(t)

	_, err := uc.Execute(context.Background(), &Request{WeekStart: "2026-10-13"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{WeekStart: "2026-10-12", MachineID: "dart-9"})
	require.ErrorIs(t, err, ErrMachineNotFound)
}
