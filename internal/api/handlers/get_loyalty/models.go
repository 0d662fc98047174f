package get_loyalty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-DartsBookingService/internal/domain"
	"github.com/m04kA/SMC-DartsBookingService/internal/service/loyalty/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// Выбранные слоты передаются как slot=<dayIndex>-<hour>, параметр повторяется.
func ToServiceRequest(userID, week string, rawSlots []string) (*models.StatusRequest, error) {
	req := &models.StatusRequest{
		UserID:    userID,
		WeekStart: week,
		Selected:  make([]domain.Slot, 0, len(rawSlots)),
	}

	for _, raw := range rawSlots {
		dayStr, hourStr, found := strings.Cut(raw, "-")
		if !found {
			return nil, fmt.Errorf("slot %q: expected <day>-<hour>", raw)
		}
		day, err := strconv.Atoi(dayStr)
		if err != nil {
			return nil, fmt.Errorf("slot %q: %w", raw, err)
		}
		hour, err := strconv.Atoi(hourStr)
		if err != nil {
			return nil, fmt.Errorf("slot %q: %w", raw, err)
		}
		slot := domain.Slot{DayIndex: day, Hour: hour}
		if !slot.IsValid() {
			return nil, fmt.Errorf("slot %q is outside the week grid", raw)
		}
		req.Selected = append(req.Selected, slot)
	}

	return req, nil
}
