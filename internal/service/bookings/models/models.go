package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-DartsBookingService/internal/domain"
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID    string `json:"userId"`
	WeekStart string `json:"weekStart,omitempty"` // Фильтр по неделе (опционально)
}

// GetWeekBookingsRequest запрос администратора на получение всех бронирований недели
type GetWeekBookingsRequest struct {
	UserID    string `json:"userId"`
	WeekStart string `json:"weekStart"`
	MachineID string `json:"machineId,omitempty"` // Фильтр по автомату (опционально)
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID           string  `json:"id"`
	WeekStart    string  `json:"weekStart"`
	DayIndex     int     `json:"dayIndex"`
	Hour         int     `json:"hour"`
	Date         string  `json:"date"`      // "2026-10-15"
	StartTime    string  `json:"startTime"` // "18:00"
	MachineID    string  `json:"machineId"`
	UserID       string  `json:"userId"`
	UserName     string  `json:"userName"`
	Price        float64 `json:"price"`
	OfferID      string  `json:"offerId,omitempty"`
	DiscountRule string  `json:"discountRule,omitempty"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    float64           `json:"total"`
	Count    int               `json:"count"`
}

// Функции конвертации

// FromDomainAppointment конвертирует domain.Appointment в BookingResponse
func FromDomainAppointment(a *domain.Appointment, loc *time.Location) (BookingResponse, error) {
	start, err := a.StartsAt(loc)
	if err != nil {
		return BookingResponse{}, err
	}

	return BookingResponse{
		ID:           a.ID,
		WeekStart:    a.WeekStart,
		DayIndex:     a.DayIndex,
		Hour:         a.Hour,
		Date:         start.Format(domain.DateFormat),
		StartTime:    fmt.Sprintf("%02d:00", a.Hour),
		MachineID:    a.MachineID,
		UserID:       a.UserID,
		UserName:     a.UserName,
		Price:        a.Price,
		OfferID:      a.OfferID,
		DiscountRule: a.DiscountRule,
	}, nil
}
