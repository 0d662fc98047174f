package bracket

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DartsBookingService/internal/domain"
)

func seededParticipants(n int) []domain.TournamentParticipant {
	out := make([]domain.TournamentParticipant, n)
	for i := range out {
		out[i] = domain.TournamentParticipant{
			ID:      fmt.Sprintf("p-%d", i+1),
			Name:    fmt.Sprintf("Player %d", i+1),
			UserIDs: []string{fmt.Sprintf("u-%d", i+1)},
			Seed:    i + 1,
		}
	}
	return out
}

func newTournament(participants []domain.TournamentParticipant) domain.Tournament {
	return domain.Tournament{
		ID:           "t1",
		Name:         "Friday Cup",
		Format:       domain.FormatSingle,
		Status:       domain.TournamentActive,
		Participants: participants,
		Matches:      Generate(participants, rand.New(rand.NewSource(7))),
	}
}

// playOut decides every playable match in favour of the better seed
func playOut(t *testing.T, tournament domain.Tournament) domain.Tournament {
	t.Helper()
	for progress := true; progress; {
		progress = false
		for _, m := range tournament.Matches {
			if m.WinnerID != "" || m.P1ID == "" || m.P2ID == "" {
				continue
			}
			p1, _ := tournament.Participant(m.P1ID)
			p2, _ := tournament.Participant(m.P2ID)
			winner := p1.ID
			if p2.Seed < p1.Seed {
				winner = p2.ID
			}
			var ok bool
			tournament, ok = Advance(tournament, m.ID, winner)
			require.True(t, ok)
			progress = true
		}
	}
	return tournament
}

func TestSize(t *testing.T) {
	cases := map[int]int{0: 2, 1: 2, 2: 2, 3: 4, 4: 4, 5: 8, 8: 8, 9: 16, 16: 16, 17: 32}
	for n, want := range cases {
		assert.Equal(t, want, Size(n), "n=%d", n)
	}
}

func TestSeedOrder(t *testing.T) {
	assert.Equal(t, []int{1, 2}, SeedOrder(2))
	assert.Equal(t, []int{1, 4, 2, 3}, SeedOrder(4))
	assert.Equal(t, []int{1, 8, 4, 5, 2, 7, 3, 6}, SeedOrder(8))
}

func TestGenerate_Completeness(t *testing.T) {
	for n := 2; n <= 20; n++ {
		t.Run(fmt.Sprintf("%d participants", n), func(t *testing.T) {
			matches := Generate(seededParticipants(n), nil)
			size := Size(n)
			require.Len(t, matches, size-1)

			round0 := lo.Filter(matches, func(m domain.TournamentMatch, _ int) bool { return m.Round == 0 })
			require.Len(t, round0, size/2)

			placed := make(map[string]bool)
			for _, m := range round0 {
				require.True(t, m.P1ID != "" || m.P2ID != "", "match %s has no participants", m.ID)
				if m.WinnerID == "" {
					assert.NotEmpty(t, m.P1ID)
					assert.NotEmpty(t, m.P2ID)
				}
				for _, id := range []string{m.P1ID, m.P2ID} {
					if id != "" {
						assert.False(t, placed[id], "participant %s placed twice", id)
						placed[id] = true
					}
				}
			}
			assert.Len(t, placed, n)

			finals := lo.Filter(matches, func(m domain.TournamentMatch, _ int) bool { return m.IsFinal() })
			require.Len(t, finals, 1)
		})
	}
}

func TestGenerate_TopSeedsMeetInFinal(t *testing.T) {
	for n := 2; n <= 16; n++ {
		t.Run(fmt.Sprintf("%d participants", n), func(t *testing.T) {
			tournament := playOut(t, newTournament(seededParticipants(n)))

			finals := lo.Filter(tournament.Matches, func(m domain.TournamentMatch, _ int) bool { return m.IsFinal() })
			require.Len(t, finals, 1)
			assert.ElementsMatch(t, []string{"p-1", "p-2"}, []string{finals[0].P1ID, finals[0].P2ID})
			assert.Equal(t, "p-1", finals[0].WinnerID)
			assert.Equal(t, domain.TournamentCompleted, tournament.Status)
		})
	}
}

func TestGenerate_UnseededSortLast(t *testing.T) {
	participants := seededParticipants(4)
	participants[0].Seed = 0
	participants[3].Seed = 1

	matches := Generate(participants, nil)

	first := matches[0]
	assert.Equal(t, "p-4", first.P1ID)
	assert.Equal(t, "p-1", first.P2ID)
}

func TestGenerate_ByesPropagateIntoSecondRound(t *testing.T) {
	for _, n := range []int{5, 6} {
		t.Run(fmt.Sprintf("%d seeded", n), func(t *testing.T) {
			matches := Generate(seededParticipants(n), nil)
			assertByesPropagated(t, matches)

			next, ok := lo.Find(matches, func(m domain.TournamentMatch) bool { return m.ID == "match-1-0" })
			require.True(t, ok)
			assert.Equal(t, "p-1", next.P1ID)
		})

		t.Run(fmt.Sprintf("%d shuffled", n), func(t *testing.T) {
			participants := seededParticipants(n)
			for i := range participants {
				participants[i].Seed = 0
			}
			assertByesPropagated(t, Generate(participants, rand.New(rand.NewSource(int64(n)))))
		})
	}
}

func assertByesPropagated(t *testing.T, matches []domain.TournamentMatch) {
	t.Helper()
	byID := lo.KeyBy(matches, func(m domain.TournamentMatch) string { return m.ID })
	for _, m := range matches {
		if m.WinnerID == "" || m.IsFinal() {
			continue
		}
		next := byID[m.NextMatchID]
		if m.FeedsFirstSlot() {
			assert.Equal(t, m.WinnerID, next.P1ID, "winner of %s not in %s", m.ID, next.ID)
		} else {
			assert.Equal(t, m.WinnerID, next.P2ID, "winner of %s not in %s", m.ID, next.ID)
		}
	}
}

func TestPropagate_ChainedByes(t *testing.T) {
	matches := []domain.TournamentMatch{
		{ID: "match-0-0", Round: 0, MatchIndex: 0, P1ID: "a", WinnerID: "a", NextMatchID: "match-1-0"},
		{ID: "match-0-1", Round: 0, MatchIndex: 1, NextMatchID: "match-1-0"},
		{ID: "match-0-2", Round: 0, MatchIndex: 2, P1ID: "b", WinnerID: "b", NextMatchID: "match-1-1"},
		{ID: "match-0-3", Round: 0, MatchIndex: 3, NextMatchID: "match-1-1"},
		{ID: "match-1-0", Round: 1, MatchIndex: 0, NextMatchID: "match-2-0"},
		{ID: "match-1-1", Round: 1, MatchIndex: 1, NextMatchID: "match-2-0"},
		{ID: "match-2-0", Round: 2, MatchIndex: 0},
	}

	propagate(matches)

	assert.Equal(t, "a", matches[4].WinnerID)
	assert.Equal(t, "b", matches[5].WinnerID)
	assert.Equal(t, "a", matches[6].P1ID)
	assert.Equal(t, "b", matches[6].P2ID)
	assert.Empty(t, matches[6].WinnerID)
}

func TestAdvance(t *testing.T) {
	tournament := newTournament(seededParticipants(4))
	// [1,4] [2,3]

	tournament, ok := Advance(tournament, "match-0-0", "p-1")
	require.True(t, ok)
	tournament, ok = Advance(tournament, "match-0-1", "p-2")
	require.True(t, ok)

	final := tournament.Matches[tournament.MatchIndex("match-1-0")]
	assert.Equal(t, "p-1", final.P1ID)
	assert.Equal(t, "p-2", final.P2ID)
	assert.Equal(t, domain.TournamentActive, tournament.Status)

	decided, ok := Advance(tournament, "match-1-0", "p-1")
	require.True(t, ok)
	assert.Equal(t, domain.TournamentCompleted, decided.Status)
	assert.Empty(t, tournament.Matches[tournament.MatchIndex("match-1-0")].WinnerID, "input must not change")

	corrected, ok := Advance(decided, "match-0-0", "p-4")
	require.True(t, ok)
	final = corrected.Matches[corrected.MatchIndex("match-1-0")]
	assert.Equal(t, "p-4", final.P1ID)
	assert.Empty(t, final.WinnerID)
	assert.Equal(t, domain.TournamentActive, corrected.Status)
}

func TestAdvance_KeepsUnrelatedDownstreamWinner(t *testing.T) {
	tournament := newTournament(seededParticipants(4))
	tournament, _ = Advance(tournament, "match-0-0", "p-1")
	tournament, _ = Advance(tournament, "match-0-1", "p-2")
	tournament, _ = Advance(tournament, "match-1-0", "p-2")

	corrected, ok := Advance(tournament, "match-0-0", "p-4")
	require.True(t, ok)
	assert.Equal(t, "p-2", corrected.Matches[corrected.MatchIndex("match-1-0")].WinnerID)
}

func TestAdvance_UnknownMatch(t *testing.T) {
	tournament := newTournament(seededParticipants(4))

	same, ok := Advance(tournament, "match-9-9", "p-1")
	assert.False(t, ok)
	assert.Equal(t, tournament, same)
}

func TestDistributePrizes_TargetsSemifinalLosers(t *testing.T) {
	participants := seededParticipants(8)
	participants[2].UserIDs = []string{"u-3", "u-3b"}

	tournament := newTournament(participants)
	tournament.Prizes = []domain.TournamentPrize{
		{Rank: 1, Type: domain.PrizeFreeSlot, Value: 2},
		{Rank: 2, Type: domain.PrizeDiscountPercent, Value: 25},
		{Rank: 3, Type: domain.PrizeFreeDrink, Product: "Cola"},
	}
	tournament = playOut(t, tournament)

	now := time.Date(2026, 10, 16, 20, 0, 0, 0, time.UTC)
	n := 0
	out, offers, err := DistributePrizes(tournament, now, PrizeOptions{NewID: func() string {
		n++
		return fmt.Sprintf("offer-%d", n)
	}})
	require.NoError(t, err)
	assert.True(t, out.PrizesDistributed)
	assert.False(t, tournament.PrizesDistributed)

	targets := lo.Map(offers, func(o domain.SpecialOffer, _ int) string { return o.TargetUserID })
	assert.Equal(t, []string{"u-1", "u-2", "u-4", "u-3", "u-3b"}, targets)

	winner := offers[0]
	assert.Equal(t, "🏆 Friday Cup - #1 Place", winner.Name)
	assert.Equal(t, domain.OfferFreeSlot, winner.Type)
	assert.Equal(t, 2.0, winner.Value)
	assert.False(t, winner.IsTemplate)
	assert.False(t, winner.Used)
	assert.Equal(t, now, winner.StartDate)
	assert.Equal(t, now.AddDate(0, 0, 90), winner.EndDate)

	drink := offers[2]
	assert.Equal(t, domain.OfferFreeDrink, drink.Type)
	assert.Equal(t, "Cola", drink.RewardProduct)
	assert.Zero(t, drink.Value)
	assert.Equal(t, "🏆 Friday Cup - #3 Place", drink.Name)
}

func TestDistributePrizes_Preconditions(t *testing.T) {
	completed := playOut(t, newTournament(seededParticipants(4)))
	completed.Prizes = []domain.TournamentPrize{{Rank: 1, Type: domain.PrizeFreeSlot, Value: 1}}

	active := newTournament(seededParticipants(4))

	distributed := completed.Clone()
	distributed.PrizesDistributed = true

	noWinner := completed.Clone()
	noWinner.Matches[noWinner.MatchIndex("match-1-0")].WinnerID = ""

	unranked := completed.Clone()
	unranked.Prizes = []domain.TournamentPrize{{Rank: 4, Type: domain.PrizeFreeSlot, Value: 1}}

	tests := []struct {
		name       string
		tournament domain.Tournament
		wantErr    error
	}{
		{name: "not completed", tournament: active, wantErr: ErrNotCompleted},
		{name: "already distributed", tournament: distributed, wantErr: ErrAlreadyDistributed},
		{name: "final without winner", tournament: noWinner, wantErr: ErrNoFinalWinner},
		{name: "no matching prizes", tournament: unranked, wantErr: ErrNoPrizes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, offers, err := DistributePrizes(tt.tournament, time.Now(), PrizeOptions{})
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, offers)
			assert.Equal(t, tt.tournament.PrizesDistributed, out.PrizesDistributed)
		})
	}
}
