package quote_price

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-DartsBookingService/internal/domain"
	"github.com/m04kA/SMC-DartsBookingService/internal/pricing"
)

// UseCase use case расчета стоимости брони до ее создания
type UseCase struct {
	store        SnapshotStore
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(store SnapshotStore, logger Logger) *UseCase {
	return &UseCase{
		store:        store,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute считает цену слотов с учетом предложения и уже забронированных слотов пользователя
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("QuotePrice: validation failed: %v", err)
		return nil, err
	}

	settings, err := uc.store.Settings(ctx)
	if err != nil {
		uc.logger.Error("QuotePrice: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	var (
		user         *domain.User
		appointments []domain.Appointment
		eligible     = []domain.SpecialOffer{}
	)

	if req.UserID != "" {
		user, err = uc.store.User(ctx, req.UserID)
		if err != nil {
			uc.logger.Error("QuotePrice: failed to get user id=%s: %v", req.UserID, err)
			return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
		}
	}

	if user != nil {
		appointments, err = uc.store.Appointments(ctx)
		if err != nil {
			uc.logger.Error("QuotePrice: failed to get appointments: %v", err)
			return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}
		eligible = settings.EligibleOffers(user.ID, uc.timeProvider.Now())
	}

	quote := pricing.Compute(pricing.QuoteRequest{
		Slots:        req.Slots,
		OfferID:      req.OfferID,
		Offers:       eligible,
		Settings:     settings,
		WeekStart:    req.WeekStart,
		User:         user,
		Appointments: appointments,
	})

	return &Response{
		Quote:          quote,
		Currency:       settings.Currency,
		EligibleOffers: eligible,
	}, nil
}
