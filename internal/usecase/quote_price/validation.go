package quote_price

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-DartsBookingService/internal/domain"
)

var validate = validator.New()

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if _, err := domain.ParseWeekStart(req.WeekStart, time.UTC); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	for _, slot := range req.Slots {
		if !slot.IsValid() {
			return fmt.Errorf("%w: slot day=%d hour=%d is outside the week grid", ErrInvalidInput, slot.DayIndex, slot.Hour)
		}
	}
	return nil
}
