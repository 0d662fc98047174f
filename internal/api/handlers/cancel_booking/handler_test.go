package cancel_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DartsBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-DartsBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-DartsBookingService/internal/domain"
	"github.com/m04kA/SMC-DartsBookingService/internal/ledger"
	cancelBooking "github.com/m04kA/SMC-DartsBookingService/internal/usecase/cancel_booking"
	"github.com/m04kA/SMC-DartsBookingService/pkg/logger"
	"github.com/m04kA/SMC-DartsBookingService/pkg/txmanager"
)

type fakeUseCase struct {
	got  *cancelBooking.Request
	resp *cancelBooking.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *cancelBooking.Request) (*cancelBooking.Response, error) {
	f.got = req
	return f.resp, f.err
}

var player = &domain.User{ID: "u1", Role: domain.RoleUser}

func newRequest(appointmentID string, user *domain.User) *http.Request {
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/bookings/"+appointmentID, nil)
	req = mux.SetURLVars(req, map[string]string{"appointmentId": appointmentID})
	if user != nil {
		req = req.WithContext(middleware.WithUser(req.Context(), user))
	}
	return req
}

// tooLateErr возвращает настоящую ошибку журнала для слота через полтора часа
func tooLateErr(t *testing.T) error {
	t.Helper()
	state := ledger.State{
		Appointments: []domain.Appointment{
			{ID: "a1", UserID: "u1", WeekStart: "2026-10-12", DayIndex: 3, Hour: 18, MachineID: "dart-1", Price: 15},
		},
		Settings: domain.DefaultSettings(),
	}
	_, _, err := ledger.New(time.UTC).Cancel(state, "a1", time.Date(2026, 10, 14, 16, 30, 0, 0, time.UTC))
	require.ErrorIs(t, err, ledger.ErrTooLate)
	return fmt.Errorf("%w: %w", cancelBooking.ErrTooLate, err)
}

func TestHandle_Cancelled(t *testing.T) {
	uc := &fakeUseCase{resp: &cancelBooking.Response{
		Cancelled:     domain.Appointment{ID: "a1", UserID: "u1"},
		OfferReopened: true,
	}}
	h := NewHandler(uc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest("a1", player))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a1", uc.got.AppointmentID)
	assert.Equal(t, "u1", uc.got.UserID)

	var resp CancelBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.OfferReopened)
}

func TestHandle_TooLateIncludesRemainingHours(t *testing.T) {
	h := NewHandler(&fakeUseCase{err: tooLateErr(t)}, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest("a1", player))

	require.Equal(t, http.StatusConflict, rec.Code)
	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, msgTooLate)
	assert.Contains(t, resp.Error, "1.5h")
}

func TestHandle_Errors(t *testing.T) {
	serialization := fmt.Errorf("%w: %w: %v", txmanager.ErrCommitTx, txmanager.ErrSerializationFailure,
		&pq.Error{Code: "40001"})

	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{name: "not found", err: cancelBooking.ErrAppointmentNotFound, status: http.StatusNotFound, body: msgNotFound},
		{name: "foreign", err: cancelBooking.ErrAccessDenied, status: http.StatusForbidden, body: msgForbidden},
		{name: "too late without detail", err: cancelBooking.ErrTooLate, status: http.StatusConflict, body: msgTooLate},
		{name: "unknown user", err: cancelBooking.ErrUserNotFound, status: http.StatusNotFound, body: msgUserNotFound},
		{name: "concurrent update", err: serialization, status: http.StatusConflict, body: msgConcurrent},
		{name: "internal", err: cancelBooking.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, logger.NewNop())

			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest("a1", player))

			assert.Equal(t, tt.status, rec.Code)
			if tt.body != "" {
				var resp handlers.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, tt.body, resp.Error)
			}
		})
	}
}

func TestHandle_MissingUser(t *testing.T) {
	uc := &fakeUseCase{}
	h := NewHandler(uc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest("a1", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, uc.got)
}
