package bracket

import (
	"math/bits"
	"sort"

	"github.com/m04kA/SMC-DartsBookingService/internal/domain"
)

// Shuffler randomizes the order of unseeded participants. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Size returns the bracket capacity for n participants: the smallest power of two >= n, at least 2
func Size(n int) int {
	if n <= domain.MinBracketSize {
		return domain.MinBracketSize
	}
	return 1 << bits.Len(uint(n-1))
}

// SeedOrder returns the standard bracket positions of seeds 1..size,
// so that seed 1 meets the weakest opponent and top seeds meet as late as possible
func SeedOrder(size int) []int {
	order := []int{1, 2}
	for n := 4; n <= size; n *= 2 {
		next := make([]int, 0, n)
		for _, seed := range order {
			next = append(next, seed, n+1-seed)
		}
		order = next
	}
	return order
}

// Generate builds a complete single-elimination match tree. Byes are resolved and
// propagated forward until nothing else can be decided without playing.
func Generate(participants []domain.TournamentParticipant, shuffler Shuffler) []domain.TournamentMatch {
	if len(participants) == 0 {
		return []domain.TournamentMatch{}
	}

	ordered := orderParticipants(participants, shuffler)
	size := Size(len(ordered))

	positions := make([]string, size)
	for i, seed := range SeedOrder(size) {
		if seed <= len(ordered) {
			positions[i] = ordered[seed-1].ID
		}
	}

	rounds := bits.Len(uint(size)) - 1
	matches := make([]domain.TournamentMatch, 0, size-1)
	for round := 0; round < rounds; round++ {
		count := size >> (round + 1)
		for i := 0; i < count; i++ {
			match := domain.TournamentMatch{
				ID:         domain.MatchID(round, i),
				Round:      round,
				MatchIndex: i,
			}
			if round < rounds-1 {
				match.NextMatchID = domain.MatchID(round+1, i/2)
			}
			if round == 0 {
				match.P1ID = positions[2*i]
				match.P2ID = positions[2*i+1]
				match.WinnerID = byeWinner(match.P1ID, match.P2ID)
			}
			matches = append(matches, match)
		}
	}

	propagate(matches)
	return matches
}

func orderParticipants(participants []domain.TournamentParticipant, shuffler Shuffler) []domain.TournamentParticipant {
	ordered := append([]domain.TournamentParticipant(nil), participants...)

	seeded := false
	for i := range ordered {
		if ordered[i].HasSeed() {
			seeded = true
			break
		}
	}

	if seeded {
		sort.SliceStable(ordered, func(i, j int) bool {
			return seedPriority(ordered[i]) < seedPriority(ordered[j])
		})
		return ordered
	}

	if shuffler != nil {
		shuffler.Shuffle(len(ordered), func(i, j int) {
			ordered[i], ordered[j] = ordered[j], ordered[i]
		})
	}
	return ordered
}

func seedPriority(p domain.TournamentParticipant) int {
	if p.HasSeed() {
		return p.Seed
	}
	return domain.UnseededPriority
}

func byeWinner(p1, p2 string) string {
	switch {
	case p1 != "" && p2 == "":
		return p1
	case p1 == "" && p2 != "":
		return p2
	default:
		return ""
	}
}

// propagate pushes decided winners into their next match and awards walkovers
// against branches that can never produce a player. Runs until fixpoint.
func propagate(matches []domain.TournamentMatch) {
	index := make(map[string]int, len(matches))
	for i := range matches {
		index[matches[i].ID] = i
	}

	for changed := true; changed; {
		changed = false
		dead := deadMatches(matches)

		for i := range matches {
			m := &matches[i]

			if m.WinnerID == "" && m.Round > 0 && !dead[m.ID] {
				first, second := feeders(m)
				switch {
				case dead[first] && m.P2ID != "":
					m.WinnerID = m.P2ID
					changed = true
				case dead[second] && m.P1ID != "":
					m.WinnerID = m.P1ID
					changed = true
				}
			}

			if m.WinnerID == "" || m.IsFinal() {
				continue
			}
			next := &matches[index[m.NextMatchID]]
			if m.FeedsFirstSlot() && next.P1ID != m.WinnerID {
				next.P1ID = m.WinnerID
				changed = true
			}
			if !m.FeedsFirstSlot() && next.P2ID != m.WinnerID {
				next.P2ID = m.WinnerID
				changed = true
			}
		}
	}
}

// deadMatches marks matches that will never produce a winner: empty round-0 pairs
// and later matches fed only by such pairs
func deadMatches(matches []domain.TournamentMatch) map[string]bool {
	dead := make(map[string]bool)
	// matches are ordered by round, so feeders are decided before the match they feed
	for i := range matches {
		m := &matches[i]
		if m.P1ID != "" || m.P2ID != "" || m.WinnerID != "" {
			continue
		}
		if m.Round == 0 {
			dead[m.ID] = true
			continue
		}
		first, second := feeders(m)
		if dead[first] && dead[second] {
			dead[m.ID] = true
		}
	}
	return dead
}

func feeders(m *domain.TournamentMatch) (string, string) {
	return domain.MatchID(m.Round-1, 2*m.MatchIndex), domain.MatchID(m.Round-1, 2*m.MatchIndex+1)
}
