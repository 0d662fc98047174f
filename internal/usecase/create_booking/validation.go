package create_booking

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-DartsBookingService/internal/availability"
	"github.com/m04kA/SMC-DartsBookingService/internal/domain"
)

var validate = validator.New()

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	for _, slot := range req.Slots {
		if !slot.IsValid() {
			return fmt.Errorf("%w: slot day=%d hour=%d is outside the week grid", ErrInvalidInput, slot.DayIndex, slot.Hour)
		}
	}
	return nil
}

// validateSlot проверяет, что слот можно забронировать на машине
func validateSlot(rules availability.Rules, weekStart string, slot domain.Slot, machineID string) error {
	if !rules.Settings.HasMachine(machineID) {
		return fmt.Errorf("%w: id=%s", ErrMachineNotFound, machineID)
	}

	status, _, err := rules.Check(weekStart, slot, machineID, "")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if status != availability.StatusAvailable {
		return &SlotUnavailableError{Slot: slot, Reason: status}
	}

	return nil
}
