package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DartsBookingService/internal/domain"
	"github.com/m04kA/SMC-DartsBookingService/internal/ledger"
)

// UseCase use case для отмены бронирования
type UseCase struct {
	store        SnapshotStore
	ledger       *ledger.Ledger
	txManager    TransactionManager
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	store SnapshotStore,
	ledger *ledger.Ledger,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		store:        store,
		ledger:       ledger,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute отменяет бронирование, возвращает предложение и пересчитывает скидки дня
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: appointment=%s, user=%s", req.AppointmentID, req.UserID)

	if req.AppointmentID == "" || req.UserID == "" {
		uc.logger.Warn("CancelBooking: appointment id and user id are required")
		return nil, fmt.Errorf("%w: appointment id and user id are required", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()
	var result Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		user, err := uc.store.User(txCtx, req.UserID)
		if err != nil {
			uc.logger.Error("CancelBooking: failed to get user id=%s: %v", req.UserID, err)
			return fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
		}
		if user == nil {
			uc.logger.Warn("CancelBooking: user id=%s not found", req.UserID)
			return ErrUserNotFound
		}

		appointments, err := uc.store.Appointments(txCtx)
		if err != nil {
			uc.logger.Error("CancelBooking: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// Проверяем права: свое бронирование или администратор
		for i := range appointments {
			if appointments[i].ID == req.AppointmentID && appointments[i].UserID != user.ID && !user.IsAdmin() {
				uc.logger.Warn("CancelBooking: access denied for user=%s to appointment=%s", req.UserID, req.AppointmentID)
				return ErrAccessDenied
			}
		}

		settings, err := uc.store.Settings(txCtx)
		if err != nil {
			uc.logger.Error("CancelBooking: failed to get settings: %v", err)
			return fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}

		state, cancelled, err := uc.ledger.Cancel(
			ledger.State{Appointments: appointments, Settings: settings},
			req.AppointmentID,
			now,
		)
		if err != nil {
			switch {
			case errors.Is(err, ledger.ErrAppointmentNotFound):
				uc.logger.Warn("CancelBooking: appointment=%s not found", req.AppointmentID)
				return ErrAppointmentNotFound
			case errors.Is(err, ledger.ErrTooLate):
				uc.logger.Warn("CancelBooking: %v", err)
				return fmt.Errorf("%w: %w", ErrTooLate, err)
			default:
				uc.logger.Error("CancelBooking: ledger failed: %v", err)
				return fmt.Errorf("%w: %v", ErrInternal, err)
			}
		}

		if err := uc.store.SaveAppointments(txCtx, state.Appointments); err != nil {
			uc.logger.Error("CancelBooking: failed to save appointments: %v", err)
			return fmt.Errorf("%w: failed to save appointments: %w", ErrInternal, err)
		}

		if cancelled.HasOffer() {
			if err := uc.store.SaveSettings(txCtx, state.Settings); err != nil {
				uc.logger.Error("CancelBooking: failed to save settings: %v", err)
				return fmt.Errorf("%w: failed to save settings: %w", ErrInternal, err)
			}
			result.OfferReopened = offerOpen(state.Settings, cancelled.OfferID)
		}

		result.Cancelled = cancelled
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.metrics.RecordCancellation(result.Cancelled.MachineID)
	uc.logger.Info("CancelBooking: successfully cancelled appointment=%s, offerReopened=%t",
		req.AppointmentID, result.OfferReopened)

	return &result, nil
}

func offerOpen(settings domain.AppSettings, offerID string) bool {
	idx := settings.OfferIndex(offerID)
	return idx >= 0 && !settings.SpecialOffers[idx].Used
}
