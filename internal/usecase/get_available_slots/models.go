package get_available_slots

import "github.com/m04kA/SMC-DartsBookingService/internal/availability"

// Request модель запроса на получение сетки слотов недели
type Request struct {
	UserID    string // ID пользователя (пустой для анонимного посетителя)
	WeekStart string // Понедельник недели, YYYY-MM-DD
	MachineID string // ID автомата (пустой = первый автомат площадки)
}

// Response модель ответа с сеткой недели
type Response struct {
	WeekStart string  `json:"weekStart"`
	MachineID string  `json:"machineId"`
	BasePrice float64 `json:"basePrice"`
	Currency  string  `json:"currency"`
	Days      []Day   `json:"days"`
}

// Day модель одного дня недели
type Day struct {
	DayIndex int    `json:"dayIndex"` // 0=Вс, 1..6=Пн..Сб
	Date     string `json:"date"`     // YYYY-MM-DD
	Open     bool   `json:"open"`     // Площадка работает в этот день
	Blocked  bool   `json:"blocked"`  // День закрыт администратором
	Slots    []Slot `json:"slots"`    // Часы в пределах рабочего времени
}

// Slot модель часового слота
type Slot struct {
	Hour          int                 `json:"hour"`
	Status        availability.Status `json:"status"`
	AppointmentID string              `json:"appointmentId,omitempty"` // только для собственных бронирований
	Price         float64             `json:"price,omitempty"`         // только для собственных бронирований
	DiscountRule  string              `json:"discountRule,omitempty"`
}
