package bookings

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-DartsBookingService/internal/domain"
	"github.com/m04kA/SMC-DartsBookingService/internal/pricing"
	"github.com/m04kA/SMC-DartsBookingService/internal/service/bookings/models"
)

// Service сервис для чтения бронирований
type Service struct {
	store  SnapshotStore
	loc    *time.Location
	logger Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(store SnapshotStore, loc *time.Location, logger Logger) *Service {
	return &Service{
		store:  store,
		loc:    loc,
		logger: logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь может видеть только своё бронирование, администратор видит любое
func (s *Service) GetByID(ctx context.Context, id string, userID string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, userID)

	appointments, err := s.store.Appointments(ctx)
	if err != nil {
		s.logger.Error("GetByID: store error: %v", err)
		return nil, fmt.Errorf("%w: GetByID - store error: %v", ErrInternal, err)
	}

	appointment, ok := lo.Find(appointments, func(a domain.Appointment) bool { return a.ID == id })
	if !ok {
		s.logger.Warn("GetByID: booking id=%s not found", id)
		return nil, ErrBookingNotFound
	}

	// Проверяем права доступа
	if appointment.UserID != userID {
		if err := s.checkAdminAccess(ctx, userID); err != nil {
			s.logger.Warn("GetByID: access denied for user=%s to booking id=%s", userID, id)
			return nil, err
		}
	}

	resp, err := models.FromDomainAppointment(&appointment, s.loc)
	if err != nil {
		s.logger.Error("GetByID: failed to convert booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - convert: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return &resp, nil
}

// GetUserBookings получает бронирования пользователя
// Опционально фильтрует по неделе
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%s, week=%s", req.UserID, req.WeekStart)

	if req.WeekStart != "" {
		if _, err := domain.ParseWeekStart(req.WeekStart, s.loc); err != nil {
			s.logger.Warn("GetUserBookings: invalid week=%s: %v", req.WeekStart, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	appointments, err := s.store.Appointments(ctx)
	if err != nil {
		s.logger.Error("GetUserBookings: store error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - store error: %v", ErrInternal, err)
	}

	filtered := lo.Filter(appointments, func(a domain.Appointment, _ int) bool {
		return a.UserID == req.UserID && (req.WeekStart == "" || a.WeekStart == req.WeekStart)
	})

	resp, err := s.toList(filtered)
	if err != nil {
		s.logger.Error("GetUserBookings: failed to convert bookings: %v", err)
		return nil, fmt.Errorf("%w: GetUserBookings - convert: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%s", resp.Count, req.UserID)
	return resp, nil
}

// GetWeekBookings получает все бронирования недели
// Доступно только администраторам
func (s *Service) GetWeekBookings(ctx context.Context, req *models.GetWeekBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetWeekBookings: fetching bookings for week=%s, user=%s", req.WeekStart, req.UserID)
	if req.MachineID != "" {
		logMsg += fmt.Sprintf(", machine=%s", req.MachineID)
	}
	s.logger.Info(logMsg)

	if err := s.checkAdminAccess(ctx, req.UserID); err != nil {
		return nil, err
	}

	if _, err := domain.ParseWeekStart(req.WeekStart, s.loc); err != nil {
		s.logger.Warn("GetWeekBookings: invalid week=%s: %v", req.WeekStart, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	appointments, err := s.store.Appointments(ctx)
	if err != nil {
		s.logger.Error("GetWeekBookings: store error: %v", err)
		return nil, fmt.Errorf("%w: GetWeekBookings - store error: %v", ErrInternal, err)
	}

	filtered := lo.Filter(appointments, func(a domain.Appointment, _ int) bool {
		return a.WeekStart == req.WeekStart && (req.MachineID == "" || a.MachineID == req.MachineID)
	})

	resp, err := s.toList(filtered)
	if err != nil {
		s.logger.Error("GetWeekBookings: failed to convert bookings: %v", err)
		return nil, fmt.Errorf("%w: GetWeekBookings - convert: %v", ErrInternal, err)
	}

	s.logger.Info("GetWeekBookings: successfully fetched %d bookings for week=%s", resp.Count, req.WeekStart)
	return resp, nil
}

// Вспомогательные методы

// toList конвертирует бронирования и сортирует их по времени начала
func (s *Service) toList(appointments []domain.Appointment) (*models.BookingListResponse, error) {
	bookings := make([]models.BookingResponse, 0, len(appointments))
	total := decimal.Zero
	for i := range appointments {
		b, err := models.FromDomainAppointment(&appointments[i], s.loc)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
		total = total.Add(pricing.Money(b.Price))
	}

	sort.SliceStable(bookings, func(i, j int) bool {
		if bookings[i].Date != bookings[j].Date {
			return bookings[i].Date < bookings[j].Date
		}
		if bookings[i].Hour != bookings[j].Hour {
			return bookings[i].Hour < bookings[j].Hour
		}
		return bookings[i].MachineID < bookings[j].MachineID
	})

	return &models.BookingListResponse{
		Bookings: bookings,
		Total:    pricing.RoundCents(total),
		Count:    len(bookings),
	}, nil
}

// checkAdminAccess проверяет, что пользователь является администратором
func (s *Service) checkAdminAccess(ctx context.Context, userID string) error {
	user, err := s.store.User(ctx, userID)
	if err != nil {
		s.logger.Error("checkAdminAccess: failed to get user id=%s: %v", userID, err)
		return fmt.Errorf("%w: checkAdminAccess - failed to get user: %v", ErrInternal, err)
	}
	if user == nil {
		s.logger.Warn("checkAdminAccess: user id=%s not found", userID)
		return ErrUserNotFound
	}
	if !user.IsAdmin() {
		s.logger.Warn("checkAdminAccess: user=%s is not an admin", userID)
		return ErrAccessDenied
	}
	return nil
}
