package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/m04kA/SMC-DartsBookingService/internal/availability"
	"github.com/m04kA/SMC-DartsBookingService/internal/domain"
	"github.com/m04kA/SMC-DartsBookingService/internal/infra/storage/snapshot"
	"github.com/m04kA/SMC-DartsBookingService/internal/ledger"
	"github.com/m04kA/SMC-DartsBookingService/pkg/logger"
	"github.com/m04kA/SMC-DartsBookingService/pkg/metrics"
	"github.com/m04kA/SMC-DartsBookingService/pkg/txmanager"
)

const testWeek = "2026-10-12"

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type CreateBookingSuite struct {
	suite.Suite
	ctx     context.Context
	store   *snapshot.Store
	useCase *UseCase
}

func TestCreateBooking(t *testing.T) {
	suite.Run(t, new(CreateBookingSuite))
}

func (s *CreateBookingSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = snapshot.NewStore(snapshot.NewMemoryRepository())

	s.Require().NoError(s.store.SaveUsers(s.ctx, []domain.User{
		{ID: "u1", Name: "Robin", Role: domain.RoleUser},
		{ID: "u2", Name: "Blocked", Role: domain.RoleUser, Blocked: true},
	}))

	settings := domain.DefaultSettings()
	settings.ConsecutiveDiscountTiers = []domain.DiscountTier{{Threshold: 3, Discount: 10}}
	settings.BlockedDates = []string{"2026-10-16"}
	settings.SpecialOffers = []domain.SpecialOffer{{
		ID:           "half",
		Name:         "Half price",
		Type:         domain.OfferDiscountPercent,
		Value:        50,
		StartDate:    time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 10, 31, 0, 0, 0, 0, time.UTC),
		TargetUserID: "u1",
	}}
	s.Require().NoError(s.store.SaveSettings(s.ctx, settings))

	s.Require().NoError(s.store.SaveTournaments(s.ctx, []domain.Tournament{{
		ID:     "t1",
		Name:   "Saturday Cup",
		Start:  time.Date(2026, 10, 17, 18, 0, 0, 0, time.UTC),
		End:    time.Date(2026, 10, 17, 20, 0, 0, 0, time.UTC),
		Status: domain.TournamentOpen,
	}}))

	s.useCase = NewUseCase(
		s.store,
		ledger.New(time.UTC),
		txmanager.NewLockingManager(),
		(*metrics.Metrics)(nil),
		time.UTC,
		domain.DefaultBookingHorizonDays,
		logger.NewNop(),
	).WithTimeProvider(fixedTime{now: time.Date(2026, 10, 13, 9, 0, 0, 0, time.UTC)})
}

func (s *CreateBookingSuite) request(slots ...domain.Slot) *Request {
	return &Request{UserID: "u1", WeekStart: testWeek, MachineID: "dart-1", Slots: slots}
}

func (s *CreateBookingSuite) TestBulkDiscountScenario() {
	resp, err := s.useCase.Execute(s.ctx, s.request(
		domain.Slot{DayIndex: 3, Hour: 18},
		domain.Slot{DayIndex: 3, Hour: 19},
		domain.Slot{DayIndex: 3, Hour: 20},
	))
	s.Require().NoError(err)

	s.Equal(40.5, resp.Total)
	s.Equal("EUR", resp.Currency)
	s.Len(resp.Appointments, 3)

	stored, err := s.store.Appointments(s.ctx)
	s.Require().NoError(err)
	s.Len(stored, 3)
	for _, a := range stored {
		s.Equal(13.5, a.Price)
		s.Equal("Bulk 3+ (-10%)", a.DiscountRule)
	}
}

func (s *CreateBookingSuite) TestOfferIsConsumed() {
	req := s.request(domain.Slot{DayIndex: 3, Hour: 12})
	req.OfferID = "half"

	resp, err := s.useCase.Execute(s.ctx, req)
	s.Require().NoError(err)
	s.Equal(7.5, resp.Total)

	settings, err := s.store.Settings(s.ctx)
	s.Require().NoError(err)
	s.True(settings.SpecialOffers[0].Used)

	_, err = s.useCase.Execute(s.ctx, &Request{
		UserID: "u1", WeekStart: testWeek, MachineID: "dart-1", OfferID: "half",
		Slots: []domain.Slot{{DayIndex: 3, Hour: 13}},
	})
	s.ErrorIs(err, ErrOfferNotEligible)
}

func (s *CreateBookingSuite) TestRejectedRequests() {
	existing := s.request(domain.Slot{DayIndex: 4, Hour: 12})
	_, err := s.useCase.Execute(s.ctx, existing)
	s.Require().NoError(err)

	tests := []struct {
		name    string
		req     *Request
		wantErr error
		reason  availability.Status
	}{
		{name: "closed hour", req: s.request(domain.Slot{DayIndex: 3, Hour: 9}), wantErr: ErrSlotUnavailable, reason: availability.StatusClosed},
		{name: "blocked date", req: s.request(domain.Slot{DayIndex: 5, Hour: 12}), wantErr: ErrSlotUnavailable, reason: availability.StatusBlocked},
		{name: "slot in the past", req: s.request(domain.Slot{DayIndex: 1, Hour: 12}), wantErr: ErrSlotUnavailable, reason: availability.StatusPast},
		{name: "tournament window", req: s.request(domain.Slot{DayIndex: 6, Hour: 18}), wantErr: ErrSlotUnavailable, reason: availability.StatusTournament},
		{name: "slot taken", req: s.request(domain.Slot{DayIndex: 4, Hour: 12}), wantErr: ErrSlotUnavailable, reason: availability.StatusBooked},
		{
			name:    "beyond horizon",
			req:     &Request{UserID: "u1", WeekStart: "2026-10-19", MachineID: "dart-1", Slots: []domain.Slot{{DayIndex: 3, Hour: 12}}},
			wantErr: ErrSlotUnavailable,
			reason:  availability.StatusTooFar,
		},
		{
			name:    "unknown machine",
			req:     &Request{UserID: "u1", WeekStart: testWeek, MachineID: "dart-9", Slots: []domain.Slot{{DayIndex: 3, Hour: 12}}},
			wantErr: ErrMachineNotFound,
		},
		{
			name:    "unknown user",
			req:     &Request{UserID: "ghost", WeekStart: testWeek, MachineID: "dart-1", Slots: []domain.Slot{{DayIndex: 3, Hour: 12}}},
			wantErr: ErrUserNotFound,
		},
		{
			name:    "blocked user",
			req:     &Request{UserID: "u2", WeekStart: testWeek, MachineID: "dart-1", Slots: []domain.Slot{{DayIndex: 3, Hour: 12}}},
			wantErr: ErrUserBlocked,
		},
		{
			name:    "no slots",
			req:     &Request{UserID: "u1", WeekStart: testWeek, MachineID: "dart-1"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "malformed week",
			req:     &Request{UserID: "u1", WeekStart: "12.10.2026", MachineID: "dart-1", Slots: []domain.Slot{{DayIndex: 3, Hour: 12}}},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "week start not a monday",
			req:     &Request{UserID: "u1", WeekStart: "2026-10-14", MachineID: "dart-1", Slots: []domain.Slot{{DayIndex: 3, Hour: 12}}},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			resp, err := s.useCase.Execute(s.ctx, tt.req)
			s.ErrorIs(err, tt.wantErr)
			s.Nil(resp)

			if tt.reason != "" {
				var slotErr *SlotUnavailableError
				s.Require().ErrorAs(err, &slotErr)
				s.Equal(tt.reason, slotErr.Reason)
				s.Equal(tt.req.Slots[0], slotErr.Slot)
			}
		})
	}

	stored, err := s.store.Appointments(s.ctx)
	s.Require().NoError(err)
	s.Len(stored, 1)
}

func (s *CreateBookingSuite) TestAllOrNothing() {
	_, err := s.useCase.Execute(s.ctx, s.request(
		domain.Slot{DayIndex: 3, Hour: 12},
		domain.Slot{DayIndex: 3, Hour: 23},
	))
	s.ErrorIs(err, ErrSlotUnavailable)

	stored, err := s.store.Appointments(s.ctx)
	s.Require().NoError(err)
	s.Empty(stored)
}
