package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-DartsBookingService/internal/availability"
	"github.com/m04kA/SMC-DartsBookingService/internal/domain"
	"github.com/m04kA/SMC-DartsBookingService/internal/ledger"
	"github.com/m04kA/SMC-DartsBookingService/internal/pricing"
)

// UseCase use case для создания бронирований
type UseCase struct {
	store        SnapshotStore
	ledger       *ledger.Ledger
	txManager    TransactionManager
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger
	loc          *time.Location
	horizon      time.Duration
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	store SnapshotStore,
	ledger *ledger.Ledger,
	txManager TransactionManager,
	metrics MetricsRecorder,
	loc *time.Location,
	horizonDays int,
	logger Logger,
) *UseCase {
	return &UseCase{
		store:        store,
		ledger:       ledger,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		loc:          loc,
		horizon:      time.Duration(horizonDays) * domain.HoursPerDay * time.Hour,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирований
// Все слоты сохраняются одной сериализуемой транзакцией: либо все, либо ни одного
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%s, week=%s, machine=%s, slots=%d, offer=%s",
		req.UserID, req.WeekStart, req.MachineID, len(req.Slots), req.OfferID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var (
		created  []domain.Appointment
		currency string
		offer    *domain.SpecialOffer
	)

	// 3. Читаем снимки, считаем и сохраняем в одной транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Пользователь
		user, err := uc.store.User(txCtx, req.UserID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get user id=%s: %v", req.UserID, err)
			return fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
		}
		if user == nil {
			uc.logger.Warn("CreateBooking: user id=%s not found", req.UserID)
			return ErrUserNotFound
		}
		if user.Blocked {
			uc.logger.Warn("CreateBooking: user id=%s is blocked", req.UserID)
			return ErrUserBlocked
		}

		// 3.2. Снимки площадки
		settings, err := uc.store.Settings(txCtx)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get settings: %v", err)
			return fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}
		currency = settings.Currency

		appointments, err := uc.store.Appointments(txCtx)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		tournaments, err := uc.store.Tournaments(txCtx)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get tournaments: %v", err)
			return fmt.Errorf("%w: failed to get tournaments: %v", ErrInternal, err)
		}

		// 3.3. Проверяем каждый слот по правилам площадки
		rules := availability.Rules{
			Settings:     settings,
			Tournaments:  tournaments,
			Appointments: appointments,
			Now:          now,
			Loc:          uc.loc,
			Horizon:      uc.horizon,
		}
		for _, slot := range req.Slots {
			if err := validateSlot(rules, req.WeekStart, slot, req.MachineID); err != nil {
				uc.logger.Warn("CreateBooking: slot day=%d hour=%d rejected: %v", slot.DayIndex, slot.Hour, err)
				return err
			}
		}

		// 3.4. Считаем цены и скидки
		eligible := settings.EligibleOffers(user.ID, now)
		state, result, err := uc.ledger.Create(
			ledger.State{Appointments: appointments, Settings: settings},
			ledger.CreateRequest{
				Slots:     req.Slots,
				MachineID: req.MachineID,
				OfferID:   req.OfferID,
				User:      *user,
				WeekStart: req.WeekStart,
			},
			eligible,
		)
		if err != nil {
			uc.logger.Warn("CreateBooking: ledger rejected booking: %v", err)
			return mapLedgerError(err)
		}

		// 3.5. Сохраняем бронирования и отметку об использовании предложения
		if err := uc.store.SaveAppointments(txCtx, state.Appointments); err != nil {
			uc.logger.Error("CreateBooking: failed to save appointments: %v", err)
			return fmt.Errorf("%w: failed to save appointments: %w", ErrInternal, err)
		}

		if req.OfferID != "" {
			if err := uc.store.SaveSettings(txCtx, state.Settings); err != nil {
				uc.logger.Error("CreateBooking: failed to save settings: %v", err)
				return fmt.Errorf("%w: failed to save settings: %w", ErrInternal, err)
			}
			if used, ok := lo.Find(eligible, func(o domain.SpecialOffer) bool { return o.ID == req.OfferID }); ok {
				offer = &used
			}
		}

		created = result
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.metrics.RecordAppointments(req.MachineID, len(created))
	if offer != nil {
		uc.metrics.RecordOfferRedeemed(string(offer.Type))
	}

	total := decimal.Zero
	for _, a := range created {
		total = total.Add(pricing.Money(a.Price))
	}
	uc.logger.Info("CreateBooking: successfully created %d appointments for user=%s, total=%.2f",
		len(created), req.UserID, pricing.RoundCents(total))

	return &Response{
		Appointments: created,
		Total:        pricing.RoundCents(total),
		Currency:     currency,
	}, nil
}

func mapLedgerError(err error) error {
	var taken *ledger.SlotTakenError
	switch {
	case errors.As(err, &taken):
		return &SlotUnavailableError{Slot: taken.Slot, Reason: availability.StatusBooked}
	case errors.Is(err, ledger.ErrSlotTaken):
		return fmt.Errorf("%w: %v", ErrSlotUnavailable, err)
	case errors.Is(err, ledger.ErrOfferNotEligible):
		return fmt.Errorf("%w: %v", ErrOfferNotEligible, err)
	case errors.Is(err, ledger.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
