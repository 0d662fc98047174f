package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-DartsBookingService/internal/domain"
)

// Request модели

// CreateTournamentRequest запрос на создание турнира
type CreateTournamentRequest struct {
	Name          string                   `json:"name" validate:"required,max=128"`
	Start         time.Time                `json:"start" validate:"required"`
	DurationHours int                      `json:"durationHours,omitempty" validate:"gte=0,lte=24"` // 0 = длительность по умолчанию
	Format        domain.TournamentFormat  `json:"format,omitempty" validate:"omitempty,oneof=single double"`
	Prizes        []domain.TournamentPrize `json:"prizes,omitempty"`
}

// ValidatePrizes проверяет призы: ранг от 1, известный тип, напиток для free_drink и положительное значение для остальных
func (r *CreateTournamentRequest) ValidatePrizes() error {
	for _, p := range r.Prizes {
		if p.Rank < 1 {
			return fmt.Errorf("prize rank %d must be positive", p.Rank)
		}
		switch p.Type {
		case domain.PrizeFreeDrink:
			if p.Product == "" {
				return fmt.Errorf("free_drink prize of rank %d needs a product", p.Rank)
			}
		case domain.PrizeFreeSlot, domain.PrizeDiscountPercent:
			if p.Value <= 0 {
				return fmt.Errorf("%s prize of rank %d needs a positive value", p.Type, p.Rank)
			}
		default:
			return fmt.Errorf("unknown prize type %q", p.Type)
		}
	}
	return nil
}

// RegisterRequest запрос на запись в турнир или отмену записи
type RegisterRequest struct {
	UserID    string `json:"userId" validate:"required"`
	TeamName  string `json:"teamName,omitempty" validate:"max=64"`
	PartnerID string `json:"partnerId,omitempty" validate:"omitempty,nefield=UserID"` // Только для парного формата
}

// UpdateSeedRequest запрос на назначение посева (0 снимает посев)
type UpdateSeedRequest struct {
	Seed int `json:"seed" validate:"gte=0"`
}

// AdvanceRequest запрос на фиксацию результата матча
type AdvanceRequest struct {
	WinnerID string `json:"winnerId" validate:"required"`
}

// Response модели

// TournamentResponse ответ с данными турнира
type TournamentResponse struct {
	domain.Tournament
}

// TournamentListResponse ответ со списком турниров
type TournamentListResponse struct {
	Tournaments []TournamentResponse `json:"tournaments"`
	Count       int                  `json:"count"`
}

// RegistrationResponse ответ на запись в турнир
type RegistrationResponse struct {
	Registered  bool                          `json:"registered"` // false - запись отменена
	Participant *domain.TournamentParticipant `json:"participant,omitempty"`
}

// PrizesResponse ответ с выданными призовыми предложениями
type PrizesResponse struct {
	Offers []domain.SpecialOffer `json:"offers"`
	Count  int                   `json:"count"`
}

// Функции конвертации

// FromDomainTournament конвертирует domain.Tournament в TournamentResponse
func FromDomainTournament(t domain.Tournament) *TournamentResponse {
	return &TournamentResponse{Tournament: t}
}

// FromDomainTournamentList конвертирует список турниров
func FromDomainTournamentList(tournaments []domain.Tournament) *TournamentListResponse {
	resp := &TournamentListResponse{
		Tournaments: make([]TournamentResponse, 0, len(tournaments)),
		Count:       len(tournaments),
	}
	for _, t := range tournaments {
		resp.Tournaments = append(resp.Tournaments, TournamentResponse{Tournament: t})
	}
	return resp
}
