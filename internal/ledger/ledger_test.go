package ledger

import (
	"fmt"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DartsBookingService/internal/domain"
)

const testWeek = "2026-10-12"

var testUser = domain.User{ID: "u1", Name: "Robin", Role: domain.RoleUser}

func sequentialIDs() IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("appt-%d", n)
	}
}

func newTestLedger() *Ledger {
	return New(time.UTC, WithIDGenerator(sequentialIDs()))
}

func newTestState(offers ...domain.SpecialOffer) State {
	settings := domain.DefaultSettings()
	settings.BasePrice = 15
	settings.ConsecutiveDiscountTiers = []domain.DiscountTier{{Threshold: 3, Discount: 10}}
	settings.SpecialOffers = offers
	return State{Settings: settings}
}

func slots(day int, hours ...int) []domain.Slot {
	return lo.Map(hours, func(h int, _ int) domain.Slot {
		return domain.Slot{DayIndex: day, Hour: h}
	})
}

func total(appointments []domain.Appointment) float64 {
	return lo.SumBy(appointments, func(a domain.Appointment) float64 { return a.Price })
}

func TestCreate_BulkDiscountScenario(t *testing.T) {
	l := newTestLedger()

	state, created, err := l.Create(newTestState(), CreateRequest{
		Slots:     slots(3, 20, 18, 19),
		MachineID: "dart-1",
		User:      testUser,
		WeekStart: testWeek,
	}, nil)
	require.NoError(t, err)

	require.Len(t, created, 3)
	assert.Equal(t, 18, created[0].Hour)
	for _, a := range created {
		assert.Equal(t, 13.5, a.Price)
		assert.Equal(t, "Bulk 3+ (-10%)", a.DiscountRule)
		assert.Equal(t, "Robin", a.UserName)
	}
	assert.Equal(t, 40.5, total(state.Appointments))
}

func TestCreate_DoesNotMutateInput(t *testing.T) {
	l := newTestLedger()
	offer := domain.SpecialOffer{ID: "o1", Type: domain.OfferDiscountPercent, Value: 50, TargetUserID: "u1"}
	initial := newTestState(offer)
	initial.Appointments = []domain.Appointment{
		{ID: "old", UserID: "u1", WeekStart: testWeek, DayIndex: 3, Hour: 10, MachineID: "dart-1", Price: 15},
	}

	_, _, err := l.Create(initial, CreateRequest{
		Slots:     slots(3, 11, 12),
		MachineID: "dart-1",
		OfferID:   "o1",
		User:      testUser,
		WeekStart: testWeek,
	}, []domain.SpecialOffer{offer})
	require.NoError(t, err)

	require.Len(t, initial.Appointments, 1)
	assert.Equal(t, 15.0, initial.Appointments[0].Price)
	assert.Empty(t, initial.Appointments[0].DiscountRule)
	assert.False(t, initial.Settings.SpecialOffers[0].Used)
}

func TestOfferUsageRoundTrip(t *testing.T) {
	l := newTestLedger()
	offer := domain.SpecialOffer{ID: "o1", Type: domain.OfferDiscountPercent, Value: 50, TargetUserID: "u1"}

	state, created, err := l.Create(newTestState(offer), CreateRequest{
		Slots:     slots(3, 18),
		MachineID: "dart-1",
		OfferID:   "o1",
		User:      testUser,
		WeekStart: testWeek,
	}, []domain.SpecialOffer{offer})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, 7.5, created[0].Price)
	assert.Equal(t, "o1", created[0].OfferID)
	assert.True(t, state.Settings.SpecialOffers[0].Used)

	now := time.Date(2026, 10, 13, 12, 0, 0, 0, time.UTC)
	state, cancelled, err := l.Cancel(state, created[0].ID, now)
	require.NoError(t, err)
	assert.Equal(t, created[0].ID, cancelled.ID)
	assert.Empty(t, state.Appointments)
	assert.False(t, state.Settings.SpecialOffers[0].Used)
}

func TestBulkRepriceSkipsOfferAppointments(t *testing.T) {
	l := newTestLedger()
	offer := domain.SpecialOffer{ID: "fixed", Type: domain.OfferFixedPrice, Value: 10, TargetUserID: "u1"}

	state, _, err := l.Create(newTestState(offer), CreateRequest{
		Slots:     slots(3, 12),
		MachineID: "dart-1",
		OfferID:   "fixed",
		User:      testUser,
		WeekStart: testWeek,
	}, []domain.SpecialOffer{offer})
	require.NoError(t, err)

	state, created, err := l.Create(state, CreateRequest{
		Slots:     slots(3, 13, 14, 15),
		MachineID: "dart-1",
		User:      testUser,
		WeekStart: testWeek,
	}, nil)
	require.NoError(t, err)

	for _, a := range state.Appointments {
		if a.HasOffer() {
			assert.Equal(t, 10.0, a.Price)
			assert.Empty(t, a.DiscountRule)
			continue
		}
		assert.Equal(t, 13.5, a.Price)
	}

	now := time.Date(2026, 10, 13, 12, 0, 0, 0, time.UTC)
	state, _, err = l.Cancel(state, created[0].ID, now)
	require.NoError(t, err)
	state, _, err = l.Cancel(state, created[1].ID, now)
	require.NoError(t, err)

	require.Len(t, state.Appointments, 2)
	for _, a := range state.Appointments {
		if a.HasOffer() {
			assert.Equal(t, 10.0, a.Price)
			continue
		}
		assert.Equal(t, 15.0, a.Price)
		assert.Empty(t, a.DiscountRule)
	}
}

func TestCreate_FreeSlotClaimsOnlyZeroedSlots(t *testing.T) {
	l := newTestLedger()
	offer := domain.SpecialOffer{ID: "free", Type: domain.OfferFreeSlot, Value: 1, TargetUserID: "u1"}

	state, created, err := l.Create(newTestState(offer), CreateRequest{
		Slots:     slots(2, 18, 19),
		MachineID: "dart-1",
		OfferID:   "free",
		User:      testUser,
		WeekStart: testWeek,
	}, []domain.SpecialOffer{offer})
	require.NoError(t, err)

	require.Len(t, created, 2)
	assert.Equal(t, "free", created[0].OfferID)
	assert.Equal(t, 0.0, created[0].Price)
	assert.Empty(t, created[1].OfferID)
	assert.Equal(t, 15.0, created[1].Price)
	assert.True(t, state.Settings.SpecialOffers[0].Used)
}

func TestCreate_Errors(t *testing.T) {
	l := newTestLedger()
	state := newTestState()
	state.Appointments = []domain.Appointment{
		{ID: "busy", UserID: "u2", WeekStart: testWeek, DayIndex: 4, Hour: 18, MachineID: "dart-1", Price: 15},
	}

	tests := []struct {
		name    string
		req     CreateRequest
		wantErr error
	}{
		{
			name:    "no slots",
			req:     CreateRequest{MachineID: "dart-1", User: testUser, WeekStart: testWeek},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "week start is not a monday",
			req:     CreateRequest{Slots: slots(4, 12), MachineID: "dart-1", User: testUser, WeekStart: "2026-10-13"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "hour outside grid",
			req:     CreateRequest{Slots: slots(4, 24), MachineID: "dart-1", User: testUser, WeekStart: testWeek},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "slot already booked",
			req:     CreateRequest{Slots: slots(4, 17, 18), MachineID: "dart-1", User: testUser, WeekStart: testWeek},
			wantErr: ErrSlotTaken,
		},
		{
			name:    "duplicate slot in request",
			req:     CreateRequest{Slots: slots(4, 12, 12), MachineID: "dart-1", User: testUser, WeekStart: testWeek},
			wantErr: ErrSlotTaken,
		},
		{
			name:    "offer not eligible",
			req:     CreateRequest{Slots: slots(4, 12), MachineID: "dart-1", OfferID: "ghost", User: testUser, WeekStart: testWeek},
			wantErr: ErrOfferNotEligible,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, created, err := l.Create(state, tt.req, nil)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, created)
			assert.Len(t, next.Appointments, 1)
		})
	}
}

func TestCreate_SlotTakenNamesSlot(t *testing.T) {
	l := newTestLedger()
	state := newTestState()
	state.Appointments = []domain.Appointment{
		{ID: "a0", UserID: "u2", WeekStart: testWeek, DayIndex: 4, Hour: 18, MachineID: "dart-1", Price: 15},
	}

	_, _, err := l.Create(state, CreateRequest{Slots: slots(4, 17, 18), MachineID: "dart-1", User: testUser, WeekStart: testWeek}, nil)
	var taken *SlotTakenError
	require.ErrorAs(t, err, &taken)
	assert.Equal(t, domain.Slot{DayIndex: 4, Hour: 18}, taken.Slot)
	assert.False(t, taken.Duplicate)

	_, _, err = l.Create(state, CreateRequest{Slots: slots(4, 12, 12), MachineID: "dart-1", User: testUser, WeekStart: testWeek}, nil)
	require.ErrorAs(t, err, &taken)
	assert.True(t, taken.Duplicate)
	assert.Contains(t, err.Error(), "duplicate slot day=4 hour=12")
}

func TestCancel_Cutoff(t *testing.T) {
	l := newTestLedger()
	state := newTestState()
	// среда 14.10.2026 18:00
	state.Appointments = []domain.Appointment{
		{ID: "a1", UserID: "u1", WeekStart: testWeek, DayIndex: 3, Hour: 18, MachineID: "dart-1", Price: 15},
	}

	t.Run("two and a half hours ahead", func(t *testing.T) {
		now := time.Date(2026, 10, 14, 15, 30, 0, 0, time.UTC)
		next, _, err := l.Cancel(state, "a1", now)
		require.NoError(t, err)
		assert.Empty(t, next.Appointments)
	})

	t.Run("one and a half hours ahead", func(t *testing.T) {
		now := time.Date(2026, 10, 14, 16, 30, 0, 0, time.UTC)
		next, _, err := l.Cancel(state, "a1", now)
		require.ErrorIs(t, err, ErrTooLate)
		assert.Contains(t, err.Error(), "1.5h remaining")

		var tooLate *TooLateError
		require.ErrorAs(t, err, &tooLate)
		assert.InDelta(t, 1.5, tooLate.HoursLeft, 1e-9)
		assert.Len(t, next.Appointments, 1)
	})

	t.Run("sunday closes the week", func(t *testing.T) {
		sunday := newTestState()
		sunday.Appointments = []domain.Appointment{
			{ID: "s1", UserID: "u1", WeekStart: testWeek, DayIndex: 0, Hour: 12, MachineID: "dart-1", Price: 15},
		}
		// воскресенье 18.10.2026 12:00, за час до начала
		now := time.Date(2026, 10, 18, 11, 0, 0, 0, time.UTC)
		_, _, err := l.Cancel(sunday, "s1", now)
		require.ErrorIs(t, err, ErrTooLate)
	})
}

func TestCancel_NotFound(t *testing.T) {
	l := newTestLedger()

	_, _, err := l.Cancel(newTestState(), "missing", time.Now())
	require.ErrorIs(t, err, ErrAppointmentNotFound)
}

// Отмена возвращает состояние к исходному только для брони из одного слота:
// пока другой слот держит предложение, оно остается использованным.
func TestCancel_KeepsOfferUsedWhileReferenced(t *testing.T) {
	l := newTestLedger()
	offer := domain.SpecialOffer{ID: "fixed", Type: domain.OfferFixedPrice, Value: 10, TargetUserID: "u1"}

	state, created, err := l.Create(newTestState(offer), CreateRequest{
		Slots:     slots(5, 12, 13),
		MachineID: "dart-1",
		OfferID:   "fixed",
		User:      testUser,
		WeekStart: testWeek,
	}, []domain.SpecialOffer{offer})
	require.NoError(t, err)
	require.Len(t, created, 2)

	now := time.Date(2026, 10, 13, 12, 0, 0, 0, time.UTC)
	state, _, err = l.Cancel(state, created[0].ID, now)
	require.NoError(t, err)
	assert.True(t, state.Settings.SpecialOffers[0].Used)

	state, _, err = l.Cancel(state, created[1].ID, now)
	require.NoError(t, err)
	assert.False(t, state.Settings.SpecialOffers[0].Used)
}
