package availability

import (
	"time"

	"github.com/m04kA/SMC-DartsBookingService/internal/domain"
)

// Status explains whether a slot can be booked and why not
type Status string

const (
	StatusAvailable  Status = "available"
	StatusBooked     Status = "booked"
	StatusMine       Status = "mine"
	StatusClosed     Status = "closed"
	StatusBlocked    Status = "blocked"
	StatusPast       Status = "past"
	StatusTooFar     Status = "too_far"
	StatusTournament Status = "tournament"
)

// Rules are the venue rules a slot is checked against
type Rules struct {
	Settings     domain.AppSettings
	Tournaments  []domain.Tournament
	Appointments []domain.Appointment
	Now          time.Time
	Loc          *time.Location
	Horizon      time.Duration
}

// Check returns the status of one slot on one machine for the given user ("" for anonymous).
// The occupying appointment is returned for booked and mine slots.
func (r Rules) Check(weekStart string, slot domain.Slot, machineID, userID string) (Status, *domain.Appointment, error) {
	for i := range r.Appointments {
		if r.Appointments[i].Occupies(weekStart, slot, machineID) {
			if userID != "" && r.Appointments[i].UserID == userID {
				return StatusMine, &r.Appointments[i], nil
			}
			return StatusBooked, &r.Appointments[i], nil
		}
	}

	start, err := domain.SlotStart(weekStart, slot, r.Loc)
	if err != nil {
		return "", nil, err
	}

	if r.Settings.IsBlocked(start.Format(domain.DateFormat)) {
		return StatusBlocked, nil, nil
	}

	hours, ok := r.Settings.WorkingHours[slot.DayIndex]
	if !ok || !hours.IsOpen(slot.Hour) {
		return StatusClosed, nil, nil
	}

	if start.Before(r.Now) {
		return StatusPast, nil, nil
	}

	if start.After(r.Now.Add(r.Horizon)) {
		return StatusTooFar, nil, nil
	}

	end := start.Add(time.Hour)
	for i := range r.Tournaments {
		if r.Tournaments[i].Overlaps(start, end) {
			return StatusTournament, nil, nil
		}
	}

	return StatusAvailable, nil, nil
}
