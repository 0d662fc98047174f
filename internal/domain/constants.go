package domain

import "time"

// Default configuration values
const (
	DefaultBasePrice          = 15.0
	DefaultCurrency           = "EUR"
	DefaultCancellationCutoff = 2 * time.Hour
	DefaultBookingHorizonDays = 7
	DefaultPrizeValidityDays  = 90
	DefaultOfferValidityDays  = 30
	DefaultTournamentHours    = 2
)

// Bracket and calendar constants
const (
	UnseededPriority = 999
	MinBracketSize   = 2
	HoursPerDay      = 24
	DaysPerWeek      = 7
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Snapshot keys used by the persistence collaborator
const (
	KeyAppointments = "appointments"
	KeySettings     = "settings"
	KeyTournaments  = "tournaments"
	KeyUsers        = "users"
)
