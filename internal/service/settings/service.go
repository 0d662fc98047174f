package settings

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/m04kA/SMC-DartsBookingService/internal/domain"
	"github.com/m04kA/SMC-DartsBookingService/internal/service/settings/models"
)

var validate = validator.New()

// Service сервис администрирования настроек площадки
type Service struct {
	store        SettingsStore
	txManager    TransactionManager
	timeProvider TimeProvider
	loc          *time.Location
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(store SettingsStore, txManager TransactionManager, loc *time.Location, logger Logger) *Service {
	return &Service{
		store:        store,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		loc:          loc,
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Get получает текущие настройки площадки
// Публичный метод - доступен всем
func (s *Service) Get(ctx context.Context) (*models.SettingsResponse, error) {
	settings, err := s.store.Settings(ctx)
	if err != nil {
		s.logger.Error("Get: store error: %v", err)
		return nil, fmt.Errorf("%w: Get - store error: %v", ErrInternal, err)
	}
	return models.FromDomainSettings(settings), nil
}

// Update обновляет базовую цену, валюту и рабочие часы
// Поддерживает частичное обновление - обновляются только указанные поля
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating venue settings")

	if err := validate.Struct(req); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := req.Validate(); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return s.mutate(ctx, "Update", func(settings *domain.AppSettings) error {
		req.ApplyToSettings(settings)
		return nil
	})
}

// UpdateDiscountTiers заменяет ступени скидок за количество слотов в день
// Ступени хранятся по возрастанию порога, повторяющиеся пороги запрещены
func (s *Service) UpdateDiscountTiers(ctx context.Context, req *models.UpdateDiscountTiersRequest) (*models.SettingsResponse, error) {
	s.logger.Info("UpdateDiscountTiers: replacing %d tiers", len(req.Tiers))

	if err := validate.Struct(req); err != nil {
		s.logger.Warn("UpdateDiscountTiers: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	thresholds := lo.Map(req.Tiers, func(t models.DiscountTierRequest, _ int) int { return t.Threshold })
	if len(lo.Uniq(thresholds)) != len(thresholds) {
		s.logger.Warn("UpdateDiscountTiers: duplicate thresholds %v", thresholds)
		return nil, fmt.Errorf("%w: duplicate thresholds", ErrInvalidInput)
	}

	tiers := lo.Map(req.Tiers, func(t models.DiscountTierRequest, _ int) domain.DiscountTier {
		return domain.DiscountTier{Threshold: t.Threshold, Discount: t.Discount}
	})
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].Threshold < tiers[j].Threshold })

	return s.mutate(ctx, "UpdateDiscountTiers", func(settings *domain.AppSettings) error {
		settings.ConsecutiveDiscountTiers = tiers
		return nil
	})
}

// AddMachine добавляет автомат
func (s *Service) AddMachine(ctx context.Context, req *models.AddMachineRequest) (*models.SettingsResponse, error) {
	s.logger.Info("AddMachine: adding machine name=%s", req.Name)

	if err := validate.Struct(req); err != nil {
		s.logger.Warn("AddMachine: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return s.mutate(ctx, "AddMachine", func(settings *domain.AppSettings) error {
		settings.Machines = append(settings.Machines, domain.Machine{
			ID:   "dart-" + uuid.NewString(),
			Name: req.Name,
		})
		return nil
	})
}

// RemoveMachine удаляет автомат; последний автомат удалить нельзя
func (s *Service) RemoveMachine(ctx context.Context, machineID string) (*models.SettingsResponse, error) {
	s.logger.Info("RemoveMachine: removing machine id=%s", machineID)

	return s.mutate(ctx, "RemoveMachine", func(settings *domain.AppSettings) error {
		if !settings.HasMachine(machineID) {
			return ErrMachineNotFound
		}
		if len(settings.Machines) == 1 {
			return ErrLastMachine
		}
		settings.Machines = lo.Reject(settings.Machines, func(m domain.Machine, _ int) bool { return m.ID == machineID })
		return nil
	})
}

// AddBlockedDate закрывает дату для бронирования
// Текущий день закрыть нельзя, повторное закрытие игнорируется, даты хранятся по возрастанию
func (s *Service) AddBlockedDate(ctx context.Context, req *models.BlockedDateRequest) (*models.SettingsResponse, error) {
	s.logger.Info("AddBlockedDate: blocking date=%s", req.Date)

	if err := validate.Struct(req); err != nil {
		s.logger.Warn("AddBlockedDate: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	today := s.timeProvider.Now().In(s.loc).Format(domain.DateFormat)
	if req.Date == today {
		s.logger.Warn("AddBlockedDate: date=%s is today", req.Date)
		return nil, ErrCannotBlockToday
	}

	return s.mutate(ctx, "AddBlockedDate", func(settings *domain.AppSettings) error {
		if settings.IsBlocked(req.Date) {
			return nil
		}
		settings.BlockedDates = append(settings.BlockedDates, req.Date)
		sort.Strings(settings.BlockedDates)
		return nil
	})
}

// RemoveBlockedDate открывает дату для бронирования
func (s *Service) RemoveBlockedDate(ctx context.Context, req *models.BlockedDateRequest) (*models.SettingsResponse, error) {
	s.logger.Info("RemoveBlockedDate: unblocking date=%s", req.Date)

	if err := validate.Struct(req); err != nil {
		s.logger.Warn("RemoveBlockedDate: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return s.mutate(ctx, "RemoveBlockedDate", func(settings *domain.AppSettings) error {
		settings.BlockedDates = lo.Without(settings.BlockedDates, req.Date)
		return nil
	})
}

// UpdateLoyalty обновляет программу лояльности
func (s *Service) UpdateLoyalty(ctx context.Context, req *models.UpdateLoyaltyRequest) (*models.SettingsResponse, error) {
	s.logger.Info("UpdateLoyalty: enabled=%t, tiers=%d", req.Enabled, len(req.Tiers))

	for _, tier := range req.Tiers {
		if tier.BookingsRequired < 1 || tier.Name == "" {
			s.logger.Warn("UpdateLoyalty: invalid tier id=%s", tier.ID)
			return nil, fmt.Errorf("%w: tier %q needs a name and a positive booking count", ErrInvalidInput, tier.ID)
		}
	}

	tiers := lo.Map(req.Tiers, func(t domain.LoyaltyTier, _ int) domain.LoyaltyTier {
		if t.ID == "" {
			t.ID = "tier-" + uuid.NewString()
		}
		return t
	})

	return s.mutate(ctx, "UpdateLoyalty", func(settings *domain.AppSettings) error {
		settings.LoyaltyProgram = domain.LoyaltyProgram{Enabled: req.Enabled, Tiers: tiers}
		return nil
	})
}

// mutate читает настройки, применяет изменение и сохраняет их в одной транзакции
func (s *Service) mutate(ctx context.Context, op string, apply func(settings *domain.AppSettings) error) (*models.SettingsResponse, error) {
	var updated domain.AppSettings

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		settings, err := s.store.Settings(txCtx)
		if err != nil {
			s.logger.Error("%s: failed to get settings: %v", op, err)
			return fmt.Errorf("%w: %s - failed to get settings: %v", ErrInternal, op, err)
		}

		settings = settings.Clone()
		if err := apply(&settings); err != nil {
			s.logger.Warn("%s: rejected: %v", op, err)
			return err
		}

		if err := s.store.SaveSettings(txCtx, settings); err != nil {
			s.logger.Error("%s: failed to save settings: %v", op, err)
			return fmt.Errorf("%w: %s - failed to save settings: %v", ErrInternal, op, err)
		}

		updated = settings
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("%s: settings saved", op)
	return models.FromDomainSettings(updated), nil
}
