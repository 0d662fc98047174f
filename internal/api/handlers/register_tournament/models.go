package register_tournament

import "github.com/m04kA/SMC-DartsBookingService/internal/service/tournaments/models"

// RegisterRequest HTTP request model; тело может быть пустым для одиночного формата
type RegisterRequest struct {
	TeamName  *string `json:"teamName,omitempty"`
	PartnerID *string `json:"partnerId,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *RegisterRequest) ToServiceRequest(userID string) *models.RegisterRequest {
	req := &models.RegisterRequest{UserID: userID}
	if r.TeamName != nil {
		req.TeamName = *r.TeamName
	}
	if r.PartnerID != nil {
		req.PartnerID = *r.PartnerID
	}
	return req
}
