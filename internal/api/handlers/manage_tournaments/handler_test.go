package manage_tournaments

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-DartsBookingService/internal/domain"
	"github.com/m04kA/SMC-DartsBookingService/internal/service/tournaments"
	"github.com/m04kA/SMC-DartsBookingService/internal/service/tournaments/models"
	"github.com/m04kA/SMC-DartsBookingService/pkg/logger"
)

type fakeService struct {
	TournamentService
	prizes    *models.PrizesResponse
	advanced  *models.TournamentResponse
	err       error
	gotMatch  string
	gotWinner string
}

func (f *fakeService) DistributePrizes(_ context.Context, _ string) (*models.PrizesResponse, error) {
	return f.prizes, f.err
}

func (f *fakeService) Advance(_ context.Context, _, matchID string, req *models.AdvanceRequest) (*models.TournamentResponse, error) {
	f.gotMatch = matchID
	f.gotWinner = req.WinnerID
	return f.advanced, f.err
}

func withVars(r *http.Request, vars map[string]string) *http.Request {
	return mux.SetURLVars(r, vars)
}

func TestDistributePrizes(t *testing.T) {
	tests := []struct {
		name   string
		svc    *fakeService
		status int
		body   string
	}{
		{
			name:   "distributed",
			svc:    &fakeService{prizes: &models.PrizesResponse{Offers: []domain.SpecialOffer{{ID: "offer-1"}}, Count: 1}},
			status: http.StatusOK,
			body:   `"count":1`,
		},
		{
			name:   "nothing to distribute is not an error",
			svc:    &fakeService{err: tournaments.ErrNoPrizes},
			status: http.StatusOK,
			body:   msgNoPrizes,
		},
		{
			name:   "not completed",
			svc:    &fakeService{err: fmt.Errorf("%w: not completed", tournaments.ErrPrizesUnavailable)},
			status: http.StatusConflict,
		},
		{
			name:   "unknown tournament",
			svc:    &fakeService{err: tournaments.ErrTournamentNotFound},
			status: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(tt.svc, logger.NewNop())
			req := withVars(httptest.NewRequest(http.MethodPost, "/", nil), map[string]string{"tournamentId": "tourney-1"})
			rec := httptest.NewRecorder()

			h.DistributePrizes(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.body != "" {
				assert.Contains(t, rec.Body.String(), tt.body)
			}
		})
	}
}

func TestAdvance(t *testing.T) {
	svc := &fakeService{advanced: &models.TournamentResponse{Tournament: domain.Tournament{
		ID:     "tourney-1",
		Status: domain.TournamentActive,
	}}}
	h := NewHandler(svc, logger.NewNop())

	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"winnerId":"part-1"}`))
	req = withVars(req, map[string]string{"tournamentId": "tourney-1", "matchId": "match-0-0"})
	rec := httptest.NewRecorder()

	h.Advance(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "match-0-0", svc.gotMatch)
	assert.Equal(t, "part-1", svc.gotWinner)

	svc.err = tournaments.ErrInvalidWinner
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"winnerId":"part-9"}`))
	h.Advance(rec, withVars(req, map[string]string{"tournamentId": "tourney-1", "matchId": "match-0-0"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
