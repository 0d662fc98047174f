package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-DartsBookingService/internal/domain"
	"github.com/m04kA/SMC-DartsBookingService/internal/pricing"
	"github.com/m04kA/SMC-DartsBookingService/internal/service/users/models"
)

var validate = validator.New()

// Service сервис зарегистрированных пользователей
type Service struct {
	store     SnapshotStore
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса пользователей
func NewService(store SnapshotStore, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		store:     store,
		txManager: txManager,
		logger:    logger,
	}
}

// Login находит пользователя по email или регистрирует нового
// Заблокированный пользователь войти не может
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.UserResponse, error) {
	s.logger.Info("Login: email=%s", req.Email)

	if err := validate.Struct(req); err != nil {
		s.logger.Warn("Login: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user domain.User
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		users, err := s.store.Users(txCtx)
		if err != nil {
			s.logger.Error("Login: failed to get users: %v", err)
			return fmt.Errorf("%w: Login - failed to get users: %v", ErrInternal, err)
		}

		if existing, ok := lo.Find(users, func(u domain.User) bool { return u.Email == email }); ok {
			if existing.Blocked {
				s.logger.Warn("Login: user id=%s is blocked", existing.ID)
				return ErrUserBlocked
			}
			user = existing
			return nil
		}

		user = domain.User{
			ID:    "user_" + uuid.NewString(),
			Name:  req.Name,
			Email: email,
			Role:  domain.RoleUser,
		}
		if err := s.store.SaveUsers(txCtx, append(users, user)); err != nil {
			s.logger.Error("Login: failed to save users: %v", err)
			return fmt.Errorf("%w: Login - failed to save users: %v", ErrInternal, err)
		}
		s.logger.Info("Login: registered new user id=%s", user.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return models.FromDomainUser(user), nil
}

// EnsureAdmin создает или обновляет учетную запись администратора
func (s *Service) EnsureAdmin(ctx context.Context, admin domain.User) error {
	s.logger.Info("EnsureAdmin: id=%s, email=%s", admin.ID, admin.Email)

	admin.Role = domain.RoleAdmin
	admin.Blocked = false

	return s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		users, err := s.store.Users(txCtx)
		if err != nil {
			s.logger.Error("EnsureAdmin: failed to get users: %v", err)
			return fmt.Errorf("%w: EnsureAdmin - failed to get users: %v", ErrInternal, err)
		}

		users = lo.Reject(users, func(u domain.User, _ int) bool { return u.ID == admin.ID })
		if err := s.store.SaveUsers(txCtx, append(users, admin)); err != nil {
			s.logger.Error("EnsureAdmin: failed to save users: %v", err)
			return fmt.Errorf("%w: EnsureAdmin - failed to save users: %v", ErrInternal, err)
		}
		return nil
	})
}

// GetByID получает пользователя по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.UserResponse, error) {
	users, err := s.store.Users(ctx)
	if err != nil {
		s.logger.Error("GetByID: failed to get users: %v", err)
		return nil, fmt.Errorf("%w: GetByID - failed to get users: %v", ErrInternal, err)
	}

	user, ok := lo.Find(users, func(u domain.User) bool { return u.ID == id })
	if !ok {
		s.logger.Warn("GetByID: user id=%s not found", id)
		return nil, ErrUserNotFound
	}
	return models.FromDomainUser(user), nil
}

// List возвращает пользователей с количеством бронирований, суммой трат и последним значком
func (s *Service) List(ctx context.Context) (*models.UserListResponse, error) {
	users, err := s.store.Users(ctx)
	if err != nil {
		s.logger.Error("List: failed to get users: %v", err)
		return nil, fmt.Errorf("%w: List - failed to get users: %v", ErrInternal, err)
	}

	appointments, err := s.store.Appointments(ctx)
	if err != nil {
		s.logger.Error("List: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: List - failed to get appointments: %v", ErrInternal, err)
	}

	settings, err := s.store.Settings(ctx)
	if err != nil {
		s.logger.Error("List: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: List - failed to get settings: %v", ErrInternal, err)
	}

	byUser := lo.GroupBy(appointments, func(a domain.Appointment) string { return a.UserID })

	resp := &models.UserListResponse{Users: make([]models.UserStatsResponse, 0, len(users)), Count: len(users)}
	for _, u := range users {
		mine := byUser[u.ID]
		spend := decimal.Zero
		for _, a := range mine {
			spend = spend.Add(pricing.Money(a.Price))
		}

		stats := models.UserStatsResponse{
			User:       u,
			Bookings:   len(mine),
			TotalSpend: pricing.RoundCents(spend),
		}
		if badges := settings.LoyaltyProgram.Earned(len(mine)); len(badges) > 0 {
			stats.LatestBadge = &badges[0]
		}
		resp.Users = append(resp.Users, stats)
	}

	s.logger.Info("List: fetched %d users", resp.Count)
	return resp, nil
}

// SetBlocked блокирует или разблокирует пользователя; администратора заблокировать нельзя
func (s *Service) SetBlocked(ctx context.Context, id string, req *models.SetBlockedRequest) (*models.UserResponse, error) {
	s.logger.Info("SetBlocked: user=%s, blocked=%t", id, req.Blocked)

	var updated domain.User
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		users, err := s.store.Users(txCtx)
		if err != nil {
			s.logger.Error("SetBlocked: failed to get users: %v", err)
			return fmt.Errorf("%w: SetBlocked - failed to get users: %v", ErrInternal, err)
		}

		_, idx, ok := lo.FindIndexOf(users, func(u domain.User) bool { return u.ID == id })
		if !ok {
			s.logger.Warn("SetBlocked: user id=%s not found", id)
			return ErrUserNotFound
		}
		if users[idx].IsAdmin() && req.Blocked {
			s.logger.Warn("SetBlocked: user id=%s is an admin", id)
			return ErrCannotBlockAdmin
		}

		users[idx].Blocked = req.Blocked
		if err := s.store.SaveUsers(txCtx, users); err != nil {
			s.logger.Error("SetBlocked: failed to save users: %v", err)
			return fmt.Errorf("%w: SetBlocked - failed to save users: %v", ErrInternal, err)
		}
		updated = users[idx]
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("SetBlocked: user=%s blocked=%t", id, updated.Blocked)
	return models.FromDomainUser(updated), nil
}
