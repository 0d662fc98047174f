package models

import "github.com/m04kA/SMC-DartsBookingService/internal/domain"

// Request модели

// LoginRequest запрос на вход; аутентификация имитируется, пользователь ищется по email
type LoginRequest struct {
	Name  string `json:"name" validate:"required,max=64"`
	Email string `json:"email" validate:"required,email"`
}

// SetBlockedRequest запрос на блокировку или разблокировку пользователя
type SetBlockedRequest struct {
	Blocked bool `json:"blocked"`
}

// Response модели

// UserResponse ответ с данными пользователя
type UserResponse struct {
	domain.User
}

// UserStatsResponse пользователь со статистикой для администратора
type UserStatsResponse struct {
	domain.User
	Bookings    int                 `json:"bookings"`
	TotalSpend  float64             `json:"totalSpend"`
	LatestBadge *domain.LoyaltyTier `json:"latestBadge,omitempty"`
}

// UserListResponse ответ со списком пользователей
type UserListResponse struct {
	Users []UserStatsResponse `json:"users"`
	Count int                 `json:"count"`
}

// FromDomainUser конвертирует domain.User в UserResponse
func FromDomainUser(user domain.User) *UserResponse {
	return &UserResponse{User: user}
}
