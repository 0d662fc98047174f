package bracket

import "github.com/m04kA/SMC-DartsBookingService/internal/domain"

// Advance records the winner of a match and moves them into the next match.
// Correcting a result clears the next match's winner if it was the previous winner.
// Returns the unchanged tournament and false if the match does not exist.
func Advance(t domain.Tournament, matchID, winnerID string) (domain.Tournament, bool) {
	idx := t.MatchIndex(matchID)
	if idx < 0 {
		return t, false
	}

	out := t.Clone()
	match := &out.Matches[idx]
	previous := match.WinnerID
	match.WinnerID = winnerID

	if match.IsFinal() {
		out.Status = domain.TournamentCompleted
		return out, true
	}

	if nextIdx := out.MatchIndex(match.NextMatchID); nextIdx >= 0 {
		next := &out.Matches[nextIdx]
		if previous != "" && previous != winnerID && next.WinnerID == previous {
			next.WinnerID = ""
		}
		if match.FeedsFirstSlot() {
			next.P1ID = winnerID
		} else {
			next.P2ID = winnerID
		}
	}

	out.Status = domain.TournamentActive
	return out, true
}
