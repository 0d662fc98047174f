package domain

import (
	"fmt"
	"time"
)

// Slot is one bookable hour inside a week: dayIndex 0=Sun, 1..6=Mon..Sat
type Slot struct {
	DayIndex int `json:"dayIndex"`
	Hour     int `json:"hour"`
}

// Ordinal returns the position of the slot inside the week grid (dayIndex*24 + hour)
func (s Slot) Ordinal() int {
	return s.DayIndex*HoursPerDay + s.Hour
}

// IsValid returns true if the slot points inside the week grid
func (s Slot) IsValid() bool {
	return s.DayIndex >= 0 && s.DayIndex < DaysPerWeek && s.Hour >= 0 && s.Hour < HoursPerDay
}

// Appointment represents one reserved hour-slot on one machine
type Appointment struct {
	ID           string  `json:"id"`
	WeekStart    string  `json:"weekStart"` // Monday of the week, YYYY-MM-DD
	DayIndex     int     `json:"dayIndex"`
	Hour         int     `json:"hour"`
	UserID       string  `json:"userId"`
	UserName     string  `json:"userName"`
	MachineID    string  `json:"machineId"`
	Price        float64 `json:"price"`
	OfferID      string  `json:"offerId,omitempty"`
	DiscountRule string  `json:"discountRule,omitempty"` // human label of the bulk tier, e.g. "Bulk 3+ (-10%)"
}

// Slot returns the week grid position of the appointment
func (a *Appointment) Slot() Slot {
	return Slot{DayIndex: a.DayIndex, Hour: a.Hour}
}

// HasOffer returns true if the appointment was priced by a special offer
func (a *Appointment) HasOffer() bool {
	return a.OfferID != ""
}

// InDayGroup returns true if the appointment belongs to the user's bookings of one day in one week
func (a *Appointment) InDayGroup(userID, weekStart string, dayIndex int) bool {
	return a.UserID == userID && a.WeekStart == weekStart && a.DayIndex == dayIndex
}

// Occupies returns true if the appointment holds the given slot on the given machine
func (a *Appointment) Occupies(weekStart string, slot Slot, machineID string) bool {
	return a.WeekStart == weekStart && a.DayIndex == slot.DayIndex && a.Hour == slot.Hour && a.MachineID == machineID
}

// StartsAt returns the wall-clock start of the appointment in the venue location
func (a *Appointment) StartsAt(loc *time.Location) (time.Time, error) {
	return SlotStart(a.WeekStart, a.Slot(), loc)
}

// WeekStartOf returns the Monday of the week containing t as YYYY-MM-DD
func WeekStartOf(t time.Time) string {
	offset := int(t.Weekday()) - int(time.Monday)
	if t.Weekday() == time.Sunday {
		offset = 6
	}
	monday := time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, t.Location())
	return monday.Format(DateFormat)
}

// ParseWeekStart parses a YYYY-MM-DD week start and checks that it is a Monday
func ParseWeekStart(weekStart string, loc *time.Location) (time.Time, error) {
	monday, err := time.ParseInLocation(DateFormat, weekStart, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrInvalidWeekStart, weekStart, err)
	}
	if monday.Weekday() != time.Monday {
		return time.Time{}, fmt.Errorf("%w: %q is not a Monday", ErrInvalidWeekStart, weekStart)
	}
	return monday, nil
}

// SlotDate returns the calendar date of dayIndex inside the week (Sunday closes the week)
func SlotDate(weekStart string, dayIndex int, loc *time.Location) (time.Time, error) {
	monday, err := ParseWeekStart(weekStart, loc)
	if err != nil {
		return time.Time{}, err
	}
	offset := dayIndex - 1
	if dayIndex == 0 {
		offset = 6
	}
	return monday.AddDate(0, 0, offset), nil
}

// SlotStart returns the wall-clock start of a slot
func SlotStart(weekStart string, slot Slot, loc *time.Location) (time.Time, error) {
	date, err := SlotDate(weekStart, slot.DayIndex, loc)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), slot.Hour, 0, 0, 0, loc), nil
}
