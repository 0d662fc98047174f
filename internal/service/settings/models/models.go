package models

import (
	"fmt"

	"github.com/m04kA/SMC-DartsBookingService/internal/domain"
)

// Request модели

// UpdateSettingsRequest запрос на обновление общих настроек площадки
// Все поля опциональны - обновляются только переданные значения
type UpdateSettingsRequest struct {
	BasePrice    *float64                   `json:"basePrice,omitempty" validate:"omitempty,gt=0"`
	Currency     *string                    `json:"currency,omitempty" validate:"omitempty,len=3"`
	WorkingHours map[int]domain.WorkingHour `json:"workingHours,omitempty"`
}

// ApplyToSettings применяет переданные поля к настройкам
func (r *UpdateSettingsRequest) ApplyToSettings(settings *domain.AppSettings) {
	if r.BasePrice != nil {
		settings.BasePrice = *r.BasePrice
	}
	if r.Currency != nil {
		settings.Currency = *r.Currency
	}
	for day, hours := range r.WorkingHours {
		settings.WorkingHours[day] = hours
	}
}

// Validate проверяет рабочие часы (пустое окно означает выходной)
func (r *UpdateSettingsRequest) Validate() error {
	for day, hours := range r.WorkingHours {
		if day < 0 || day >= domain.DaysPerWeek {
			return fmt.Errorf("day index %d is outside the week", day)
		}
		if hours.Start < 0 || hours.End > domain.HoursPerDay || hours.Start > hours.End {
			return fmt.Errorf("working hours %d-%d of day %d are invalid", hours.Start, hours.End, day)
		}
	}
	return nil
}

// DiscountTierRequest ступень скидки за количество слотов в день
type DiscountTierRequest struct {
	Threshold int     `json:"threshold" validate:"min=1"`
	Discount  float64 `json:"discount" validate:"gt=0,lte=100"`
}

// UpdateDiscountTiersRequest запрос на замену ступеней скидок
type UpdateDiscountTiersRequest struct {
	Tiers []DiscountTierRequest `json:"tiers" validate:"dive"`
}

// AddMachineRequest запрос на добавление автомата
type AddMachineRequest struct {
	Name string `json:"name" validate:"required,max=64"`
}

// BlockedDateRequest запрос на закрытие или открытие даты
type BlockedDateRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

// UpdateLoyaltyRequest запрос на обновление программы лояльности
type UpdateLoyaltyRequest struct {
	Enabled bool                 `json:"enabled"`
	Tiers   []domain.LoyaltyTier `json:"tiers" validate:"dive"`
}

// Response модели

// SettingsResponse ответ с настройками площадки
type SettingsResponse struct {
	domain.AppSettings
}

// FromDomainSettings конвертирует domain.AppSettings в SettingsResponse
func FromDomainSettings(settings domain.AppSettings) *SettingsResponse {
	return &SettingsResponse{AppSettings: settings}
}
