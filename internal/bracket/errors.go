package bracket

import "errors"

var (
	// ErrNotCompleted returned when prizes are requested before the final is decided
	ErrNotCompleted = errors.New("bracket: tournament is not completed")

	// ErrAlreadyDistributed returned when prizes were handed out before
	ErrAlreadyDistributed = errors.New("bracket: prizes already distributed")

	// ErrNoFinalWinner returned when the final match has no winner
	ErrNoFinalWinner = errors.New("bracket: final match has no winner")

	// ErrNoPrizes returned when no configured prize matched a ranked participant
	ErrNoPrizes = errors.New("bracket: no prizes to distribute")
)
