package loyalty

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/m04kA/SMC-DartsBookingService/internal/domain"
	"github.com/m04kA/SMC-DartsBookingService/internal/pricing"
	"github.com/m04kA/SMC-DartsBookingService/internal/service/loyalty/models"
)

// Service сервис программы лояльности
type Service struct {
	store  SnapshotStore
	loc    *time.Location
	logger Logger
}

// NewService создает новый экземпляр сервиса лояльности
func NewService(store SnapshotStore, loc *time.Location, logger Logger) *Service {
	return &Service{
		store:  store,
		loc:    loc,
		logger: logger,
	}
}

// Status возвращает значки пользователя, следующий значок и статус power session недели
func (s *Service) Status(ctx context.Context, req *models.StatusRequest) (*models.StatusResponse, error) {
	s.logger.Info("Status: user=%s, week=%s, selected=%d", req.UserID, req.WeekStart, len(req.Selected))

	if req.WeekStart != "" {
		if _, err := domain.ParseWeekStart(req.WeekStart, s.loc); err != nil {
			s.logger.Warn("Status: invalid week=%s: %v", req.WeekStart, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	settings, err := s.store.Settings(ctx)
	if err != nil {
		s.logger.Error("Status: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: Status - failed to get settings: %v", ErrInternal, err)
	}

	appointments, err := s.store.Appointments(ctx)
	if err != nil {
		s.logger.Error("Status: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: Status - failed to get appointments: %v", ErrInternal, err)
	}

	mine := lo.Filter(appointments, func(a domain.Appointment, _ int) bool { return a.UserID == req.UserID })

	resp := &models.StatusResponse{
		TotalBookings: len(mine),
		Badges:        settings.LoyaltyProgram.Earned(len(mine)),
	}
	if next, ok := settings.LoyaltyProgram.Next(len(mine)); ok {
		resp.NextBadge = &next
		resp.BookingsToNext = next.BookingsRequired - len(mine)
	}
	if req.WeekStart != "" {
		resp.PowerSession = PowerSessionFor(settings.ConsecutiveDiscountTiers, mine, req.WeekStart, req.Selected)
	}

	s.logger.Info("Status: user=%s has %d bookings and %d badges", req.UserID, resp.TotalBookings, len(resp.Badges))
	return resp, nil
}

// PowerSessionFor находит день недели с наибольшим числом слотов (бронирования плюс выбранные)
// и ступень скидки для него; nil, если ни одна ступень не достигнута
func PowerSessionFor(tiers []domain.DiscountTier, mine []domain.Appointment, weekStart string, selected []domain.Slot) *models.PowerSession {
	best := models.PowerSession{DayIndex: -1}
	for day := 0; day < domain.DaysPerWeek; day++ {
		count := lo.CountBy(mine, func(a domain.Appointment) bool { return a.WeekStart == weekStart && a.DayIndex == day })
		count += lo.CountBy(selected, func(s domain.Slot) bool { return s.DayIndex == day })
		if count > best.Slots {
			best.DayIndex = day
			best.Slots = count
		}
	}

	tier, ok := pricing.ResolveTier(tiers, best.Slots)
	if !ok {
		return nil
	}
	best.Tier = tier
	return &best
}
