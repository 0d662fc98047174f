package models

import "github.com/m04kA/SMC-DartsBookingService/internal/domain"

// Request модели

// StatusRequest запрос статуса лояльности пользователя
type StatusRequest struct {
	UserID    string        `json:"userId"`
	WeekStart string        `json:"weekStart,omitempty"` // Неделя для power session (опционально)
	Selected  []domain.Slot `json:"selected,omitempty"`  // Выбранные, но ещё не забронированные слоты
}

// Response модели

// StatusResponse статус лояльности пользователя
type StatusResponse struct {
	TotalBookings  int                  `json:"totalBookings"`
	Badges         []domain.LoyaltyTier `json:"badges"` // Полученные значки, от старшего к младшему
	NextBadge      *domain.LoyaltyTier  `json:"nextBadge,omitempty"`
	BookingsToNext int                  `json:"bookingsToNext,omitempty"`
	PowerSession   *PowerSession        `json:"powerSession,omitempty"`
}

// PowerSession ступень скидки, которую даёт самый загруженный день недели
type PowerSession struct {
	DayIndex int                 `json:"dayIndex"`
	Slots    int                 `json:"slots"`
	Tier     domain.DiscountTier `json:"tier"`
}
