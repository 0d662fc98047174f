package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DartsBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-DartsBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-DartsBookingService/internal/availability"
	"github.com/m04kA/SMC-DartsBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-DartsBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-DartsBookingService/pkg/logger"
)

type fakeUseCase struct {
	got  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.got = req
	return f.resp, f.err
}

func newRequest(t *testing.T, body string, user *domain.User) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if user != nil {
		req = req.WithContext(middleware.WithUser(req.Context(), user))
	}
	return req
}

var player = &domain.User{ID: "user_1", Role: domain.RoleUser}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{resp: &createBooking.Response{
		Appointments: []domain.Appointment{{ID: "appt-1", DayIndex: 1, Hour: 18, Price: 10}},
		Total:        10,
		Currency:     "EUR",
	}}
	h := NewHandler(uc, logger.NewNop())

	body := `{"weekStart":"2026-10-12","machineId":"dart-1","offerId":"offer-1","slots":[{"dayIndex":1,"hour":18}]}`
	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(t, body, player))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "user_1", uc.got.UserID)
	assert.Equal(t, "offer-1", uc.got.OfferID)
	assert.Equal(t, []domain.Slot{{DayIndex: 1, Hour: 18}}, uc.got.Slots)

	var resp CreateBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 10.0, resp.Total)
	assert.Len(t, resp.Appointments, 1)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "slot taken", err: fmt.Errorf("%w: day=1 hour=18 is booked", createBooking.ErrSlotUnavailable), status: http.StatusConflict},
		{name: "offer", err: createBooking.ErrOfferNotEligible, status: http.StatusConflict},
		{name: "machine", err: createBooking.ErrMachineNotFound, status: http.StatusNotFound},
		{name: "blocked", err: createBooking.ErrUserBlocked, status: http.StatusForbidden},
		{name: "invalid", err: createBooking.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "concurrent", err: fmt.Errorf("%w: %w", createBooking.ErrInternal, createBooking.ErrConcurrentUpdate), status: http.StatusConflict},
		{name: "internal", err: createBooking.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, logger.NewNop())
			rec := httptest.NewRecorder()

			h.Handle(rec, newRequest(t, `{"weekStart":"2026-10-12","machineId":"dart-1","slots":[]}`, player))

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandle_SlotUnavailableNamesSlotAndReason(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "past",
			err:  &createBooking.SlotUnavailableError{Slot: domain.Slot{DayIndex: 1, Hour: 9}, Reason: availability.StatusPast},
			want: msgSlotUnavailable + ": день 1, 09:00 (время уже прошло)",
		},
		{
			name: "tournament",
			err: fmt.Errorf("wrapped: %w",
				&createBooking.SlotUnavailableError{Slot: domain.Slot{DayIndex: 6, Hour: 18}, Reason: availability.StatusTournament}),
			want: msgSlotUnavailable + ": день 6, 18:00 (проходит турнир)",
		},
		{
			name: "no detail",
			err:  createBooking.ErrSlotUnavailable,
			want: msgSlotUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, logger.NewNop())
			rec := httptest.NewRecorder()

			h.Handle(rec, newRequest(t, `{"weekStart":"2026-10-12","machineId":"dart-1","slots":[{"dayIndex":1,"hour":9}]}`, player))

			require.Equal(t, http.StatusConflict, rec.Code)
			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.want, resp.Error)
		})
	}
}

func TestHandle_RequiresUser(t *testing.T) {
	uc := &fakeUseCase{}
	h := NewHandler(uc, logger.NewNop())
	rec := httptest.NewRecorder()

	h.Handle(rec, newRequest(t, `{}`, nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, uc.got)
}

func TestHandle_InvalidBody(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, logger.NewNop())

	for _, body := range []string{"", "{", `{"unknown":1}`} {
		rec := httptest.NewRecorder()
		h.Handle(rec, newRequest(t, body, player))
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}
