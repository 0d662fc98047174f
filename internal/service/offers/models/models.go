package models

import (
	"time"

	"github.com/m04kA/SMC-DartsBookingService/internal/domain"
)

// Request модели

// CreateTemplateRequest запрос на создание шаблона предложения
type CreateTemplateRequest struct {
	Name           string               `json:"name" validate:"required,max=128"`
	Type           domain.OfferType     `json:"type" validate:"required,oneof=discount_percent fixed_price free_drink free_slot"`
	Value          float64              `json:"value" validate:"gte=0"`
	StartDate      *time.Time           `json:"startDate,omitempty"` // По умолчанию - сейчас
	EndDate        *time.Time           `json:"endDate,omitempty"`   // По умолчанию - через срок действия предложений
	ConditionType  domain.ConditionType `json:"conditionType,omitempty" validate:"omitempty,oneof=none buy_x_slots"`
	ConditionValue int                  `json:"conditionValue,omitempty" validate:"gte=0"`
	RewardProduct  string               `json:"rewardProduct,omitempty" validate:"required_if=Type free_drink"`
}

// SendTemplateRequest запрос на рассылку шаблона пользователям
type SendTemplateRequest struct {
	UserIDs []string `json:"userIds" validate:"min=1,dive,required"`
}

// Response модели

// OfferResponse ответ с данными предложения
type OfferResponse struct {
	domain.SpecialOffer
}

// OfferListResponse ответ со списком предложений
type OfferListResponse struct {
	Offers []OfferResponse `json:"offers"`
	Count  int             `json:"count"`
}

// Функции конвертации

// FromDomainOffer конвертирует domain.SpecialOffer в OfferResponse
func FromDomainOffer(offer domain.SpecialOffer) *OfferResponse {
	return &OfferResponse{SpecialOffer: offer}
}

// FromDomainOfferList конвертирует список предложений
func FromDomainOfferList(offers []domain.SpecialOffer) *OfferListResponse {
	resp := &OfferListResponse{Offers: make([]OfferResponse, 0, len(offers)), Count: len(offers)}
	for _, o := range offers {
		resp.Offers = append(resp.Offers, OfferResponse{SpecialOffer: o})
	}
	return resp
}
