package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// TournamentFormat represents the elimination format
type TournamentFormat string

const (
	FormatSingle TournamentFormat = "single"
	FormatDouble TournamentFormat = "double"
)

// TournamentStatus represents the lifecycle state: open -> active -> completed
type TournamentStatus string

const (
	TournamentOpen      TournamentStatus = "open"
	TournamentActive    TournamentStatus = "active"
	TournamentCompleted TournamentStatus = "completed"
)

// Tournament owns its participants, bracket and prize configuration
type Tournament struct {
	ID                string                  `json:"id"`
	Name              string                  `json:"name"`
	Start             time.Time               `json:"start"`
	End               time.Time               `json:"end"`
	Format            TournamentFormat        `json:"format"`
	Status            TournamentStatus        `json:"status"`
	Participants      []TournamentParticipant `json:"participants"`
	Matches           []TournamentMatch       `json:"matches"`
	Prizes            []TournamentPrize       `json:"prizes"`
	PrizesDistributed bool                    `json:"prizesDistributed,omitempty"`
}

// Clone returns a deep copy of the tournament
func (t Tournament) Clone() Tournament {
	out := t
	out.Participants = make([]TournamentParticipant, len(t.Participants))
	for i, p := range t.Participants {
		p.UserIDs = append([]string(nil), p.UserIDs...)
		out.Participants[i] = p
	}
	out.Matches = append([]TournamentMatch(nil), t.Matches...)
	out.Prizes = append([]TournamentPrize(nil), t.Prizes...)
	return out
}

// MatchIndex returns the position of the match in Matches or -1
func (t *Tournament) MatchIndex(id string) int {
	for i := range t.Matches {
		if t.Matches[i].ID == id {
			return i
		}
	}
	return -1
}

// Participant returns the participant with the given id
func (t *Tournament) Participant(id string) (*TournamentParticipant, bool) {
	for i := range t.Participants {
		if t.Participants[i].ID == id {
			return &t.Participants[i], true
		}
	}
	return nil, false
}

// ParticipantIndexOfUser returns the index of the participant the user plays for or -1
func (t *Tournament) ParticipantIndexOfUser(userID string) int {
	for i, p := range t.Participants {
		for _, uid := range p.UserIDs {
			if uid == userID {
				return i
			}
		}
	}
	return -1
}

// Overlaps returns true if [start, end] intersects the tournament window
func (t *Tournament) Overlaps(start, end time.Time) bool {
	return !start.After(t.End) && !end.Before(t.Start)
}

// TournamentParticipant is a player or a team of two registered users
type TournamentParticipant struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	UserIDs []string `json:"userIds"`
	Seed    int      `json:"seed,omitempty"` // 0 = unseeded
}

// HasSeed returns true if the admin assigned a seed
func (p *TournamentParticipant) HasSeed() bool {
	return p.Seed > 0
}

// TournamentMatch is one node of the bracket tree. Empty ids mean "nobody yet" (a bye in round 0).
type TournamentMatch struct {
	ID          string `json:"id"`
	Round       int    `json:"round"`
	MatchIndex  int    `json:"matchIndex"`
	P1ID        string `json:"p1Id,omitempty"`
	P2ID        string `json:"p2Id,omitempty"`
	WinnerID    string `json:"winnerId,omitempty"`
	NextMatchID string `json:"nextMatchId,omitempty"`
}

// MatchID builds the canonical id of a bracket match
func MatchID(round, index int) string {
	return fmt.Sprintf("match-%d-%d", round, index)
}

// IsFinal returns true for the match without a successor
func (m *TournamentMatch) IsFinal() bool {
	return m.NextMatchID == ""
}

// FeedsFirstSlot returns true if the winner moves into p1 of the next match
func (m *TournamentMatch) FeedsFirstSlot() bool {
	return m.MatchIndex%2 == 0
}

// Loser returns the participant that did not win, or "" when undecided or a bye
func (m *TournamentMatch) Loser() string {
	switch m.WinnerID {
	case "":
		return ""
	case m.P1ID:
		return m.P2ID
	default:
		return m.P1ID
	}
}

// PrizeType represents what a tournament prize turns into
type PrizeType string

const (
	PrizeFreeSlot        PrizeType = "free_slot"
	PrizeDiscountPercent PrizeType = "discount_percent"
	PrizeFreeDrink       PrizeType = "free_drink"
)

// TournamentPrize is a tagged union: numeric Value for free_slot/discount_percent,
// Product for free_drink. On the wire both share the legacy "value" field.
type TournamentPrize struct {
	Rank    int
	Type    PrizeType
	Value   float64
	Product string
}

type prizeWire struct {
	Rank  int             `json:"rank"`
	Type  PrizeType       `json:"type"`
	Value json.RawMessage `json:"value"`
}

// MarshalJSON writes the drink name into "value" for free_drink prizes
func (p TournamentPrize) MarshalJSON() ([]byte, error) {
	var value any = p.Value
	if p.Type == PrizeFreeDrink {
		value = p.Product
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return json.Marshal(prizeWire{Rank: p.Rank, Type: p.Type, Value: raw})
}

// UnmarshalJSON accepts "value" as either a number or a drink name
func (p *TournamentPrize) UnmarshalJSON(data []byte) error {
	var wire prizeWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	p.Rank = wire.Rank
	p.Type = wire.Type
	p.Value = 0
	p.Product = ""

	if len(wire.Value) == 0 || string(wire.Value) == "null" {
		return nil
	}
	if wire.Value[0] == '"' {
		return json.Unmarshal(wire.Value, &p.Product)
	}
	return json.Unmarshal(wire.Value, &p.Value)
}
