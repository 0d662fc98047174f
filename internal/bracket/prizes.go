package bracket

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/m04kA/SMC-DartsBookingService/internal/domain"
)

// PrizeOptions controls the offers emitted for tournament prizes
type PrizeOptions struct {
	Validity time.Duration
	NewID    func() string
}

func (o PrizeOptions) withDefaults() PrizeOptions {
	if o.Validity <= 0 {
		o.Validity = domain.DefaultPrizeValidityDays * domain.HoursPerDay * time.Hour
	}
	if o.NewID == nil {
		o.NewID = uuid.NewString
	}
	return o
}

// Standings are the ranked participants of a decided bracket
type Standings struct {
	Winner     string
	RunnerUp   string
	SemiLosers []string
}

// Rank returns the participant ids holding the given rank
func (s Standings) Rank(rank int) []string {
	switch rank {
	case 1:
		return lo.Compact([]string{s.Winner})
	case 2:
		return lo.Compact([]string{s.RunnerUp})
	case 3:
		return s.SemiLosers
	default:
		return nil
	}
}

// ComputeStandings reads winner, runner-up and semifinal losers from the bracket
func ComputeStandings(matches []domain.TournamentMatch) (Standings, bool) {
	if len(matches) == 0 {
		return Standings{}, false
	}
	finalRound := lo.MaxBy(matches, func(a, b domain.TournamentMatch) bool {
		return a.Round > b.Round
	}).Round

	final, ok := lo.Find(matches, func(m domain.TournamentMatch) bool {
		return m.Round == finalRound
	})
	if !ok || final.WinnerID == "" {
		return Standings{}, false
	}

	semiLosers := lo.FilterMap(matches, func(m domain.TournamentMatch, _ int) (string, bool) {
		if m.Round != finalRound-1 {
			return "", false
		}
		loser := m.Loser()
		return loser, loser != ""
	})

	return Standings{
		Winner:     final.WinnerID,
		RunnerUp:   final.Loser(),
		SemiLosers: semiLosers,
	}, true
}

// DistributePrizes turns the configured prizes into offers targeted at every user of the
// ranked participants. On success the returned tournament is marked prizesDistributed.
func DistributePrizes(t domain.Tournament, now time.Time, opts PrizeOptions) (domain.Tournament, []domain.SpecialOffer, error) {
	if t.Status != domain.TournamentCompleted {
		return t, nil, fmt.Errorf("%w: status=%s", ErrNotCompleted, t.Status)
	}
	if t.PrizesDistributed {
		return t, nil, ErrAlreadyDistributed
	}
	standings, ok := ComputeStandings(t.Matches)
	if !ok {
		return t, nil, ErrNoFinalWinner
	}

	opts = opts.withDefaults()
	offers := make([]domain.SpecialOffer, 0)
	for _, prize := range t.Prizes {
		for _, participantID := range standings.Rank(prize.Rank) {
			participant, found := t.Participant(participantID)
			if !found {
				continue
			}
			for _, userID := range participant.UserIDs {
				offers = append(offers, prizeOffer(t.Name, prize, userID, now, opts))
			}
		}
	}

	if len(offers) == 0 {
		return t, nil, ErrNoPrizes
	}

	out := t.Clone()
	out.PrizesDistributed = true
	return out, offers, nil
}

func prizeOffer(tournamentName string, prize domain.TournamentPrize, userID string, now time.Time, opts PrizeOptions) domain.SpecialOffer {
	offer := domain.SpecialOffer{
		ID:            opts.NewID(),
		Name:          fmt.Sprintf("🏆 %s - #%d Place", tournamentName, prize.Rank),
		Type:          domain.OfferType(prize.Type),
		Value:         prize.Value,
		StartDate:     now,
		EndDate:       now.Add(opts.Validity),
		TargetUserID:  userID,
		ConditionType: domain.ConditionNone,
	}
	if prize.Type == domain.PrizeFreeDrink {
		offer.Value = 0
		offer.RewardProduct = prize.Product
	}
	return offer
}
