package offers

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/m04kA/SMC-DartsBookingService/internal/domain"
	"github.com/m04kA/SMC-DartsBookingService/internal/service/offers/models"
)

var validate = validator.New()

// Service сервис специальных предложений: шаблоны, рассылка и доступные пользователю предложения
type Service struct {
	store        SnapshotStore
	txManager    TransactionManager
	timeProvider TimeProvider
	validity     time.Duration
	logger       Logger
}

// NewService создает новый экземпляр сервиса предложений
func NewService(store SnapshotStore, txManager TransactionManager, validityDays int, logger Logger) *Service {
	return &Service{
		store:        store,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		validity:     time.Duration(validityDays) * domain.HoursPerDay * time.Hour,
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Templates возвращает все шаблоны предложений
func (s *Service) Templates(ctx context.Context) (*models.OfferListResponse, error) {
	settings, err := s.store.Settings(ctx)
	if err != nil {
		s.logger.Error("Templates: store error: %v", err)
		return nil, fmt.Errorf("%w: Templates - store error: %v", ErrInternal, err)
	}

	templates := lo.Filter(settings.SpecialOffers, func(o domain.SpecialOffer, _ int) bool { return o.IsTemplate })
	return models.FromDomainOfferList(templates), nil
}

// CreateTemplate создает шаблон предложения
// Период действия по умолчанию - от текущего момента на срок действия предложений
func (s *Service) CreateTemplate(ctx context.Context, req *models.CreateTemplateRequest) (*models.OfferResponse, error) {
	s.logger.Info("CreateTemplate: name=%s, type=%s, value=%.2f", req.Name, req.Type, req.Value)

	if err := validate.Struct(req); err != nil {
		s.logger.Warn("CreateTemplate: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	now := s.timeProvider.Now()
	start, end := now, now.Add(s.validity)
	if req.StartDate != nil {
		start = *req.StartDate
	}
	if req.EndDate != nil {
		end = *req.EndDate
	}
	if end.Before(start) {
		s.logger.Warn("CreateTemplate: end %s is before start %s", end.Format(time.RFC3339), start.Format(time.RFC3339))
		return nil, fmt.Errorf("%w: end date is before start date", ErrInvalidInput)
	}

	template := domain.SpecialOffer{
		ID:             "offer-" + uuid.NewString(),
		Name:           req.Name,
		Type:           req.Type,
		Value:          req.Value,
		StartDate:      start,
		EndDate:        end,
		ConditionType:  req.ConditionType,
		ConditionValue: req.ConditionValue,
		IsTemplate:     true,
	}
	if template.ConditionType == "" {
		template.ConditionType = domain.ConditionNone
	}
	if req.Type == domain.OfferFreeDrink {
		template.RewardProduct = req.RewardProduct
	}

	err := s.mutate(ctx, "CreateTemplate", func(settings *domain.AppSettings) error {
		settings.SpecialOffers = append(settings.SpecialOffers, template)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("CreateTemplate: successfully created template id=%s", template.ID)
	return models.FromDomainOffer(template), nil
}

// SendTemplate создает по экземпляру шаблона для каждого пользователя
func (s *Service) SendTemplate(ctx context.Context, templateID string, req *models.SendTemplateRequest) (*models.OfferListResponse, error) {
	s.logger.Info("SendTemplate: template=%s, users=%d", templateID, len(req.UserIDs))

	if err := validate.Struct(req); err != nil {
		s.logger.Warn("SendTemplate: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	userIDs := lo.Uniq(req.UserIDs)
	for _, userID := range userIDs {
		user, err := s.store.User(ctx, userID)
		if err != nil {
			s.logger.Error("SendTemplate: failed to get user id=%s: %v", userID, err)
			return nil, fmt.Errorf("%w: SendTemplate - failed to get user: %v", ErrInternal, err)
		}
		if user == nil {
			s.logger.Warn("SendTemplate: user id=%s not found", userID)
			return nil, fmt.Errorf("%w: id=%s", ErrUserNotFound, userID)
		}
	}

	var sent []domain.SpecialOffer
	err := s.mutate(ctx, "SendTemplate", func(settings *domain.AppSettings) error {
		idx := settings.OfferIndex(templateID)
		if idx < 0 {
			return ErrOfferNotFound
		}
		template := settings.SpecialOffers[idx]
		if !template.IsTemplate {
			return ErrNotTemplate
		}

		sent = make([]domain.SpecialOffer, 0, len(userIDs))
		for _, userID := range userIDs {
			instance := template
			instance.ID = "offer-" + uuid.NewString()
			instance.TargetUserID = userID
			instance.IsTemplate = false
			instance.Used = false
			instance.ParentTemplateID = template.ID
			sent = append(sent, instance)
		}

		settings.SpecialOffers = append(settings.SpecialOffers, sent...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("SendTemplate: successfully sent template=%s to %d users", templateID, len(sent))
	return models.FromDomainOfferList(sent), nil
}

// Recipients возвращает экземпляры, созданные из шаблона
func (s *Service) Recipients(ctx context.Context, templateID string) (*models.OfferListResponse, error) {
	settings, err := s.store.Settings(ctx)
	if err != nil {
		s.logger.Error("Recipients: store error: %v", err)
		return nil, fmt.Errorf("%w: Recipients - store error: %v", ErrInternal, err)
	}
	if settings.OfferIndex(templateID) < 0 {
		s.logger.Warn("Recipients: template id=%s not found", templateID)
		return nil, ErrOfferNotFound
	}

	instances := lo.Filter(settings.SpecialOffers, func(o domain.SpecialOffer, _ int) bool {
		return o.ParentTemplateID == templateID
	})
	return models.FromDomainOfferList(instances), nil
}

// Delete удаляет предложение (шаблон или экземпляр); экземпляры шаблона сохраняются
func (s *Service) Delete(ctx context.Context, offerID string) error {
	s.logger.Info("Delete: deleting offer id=%s", offerID)

	err := s.mutate(ctx, "Delete", func(settings *domain.AppSettings) error {
		if settings.OfferIndex(offerID) < 0 {
			return ErrOfferNotFound
		}
		settings.SpecialOffers = lo.Reject(settings.SpecialOffers, func(o domain.SpecialOffer, _ int) bool {
			return o.ID == offerID
		})
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Delete: successfully deleted offer id=%s", offerID)
	return nil
}

// EligibleOffers возвращает предложения, которые пользователь может использовать сейчас
func (s *Service) EligibleOffers(ctx context.Context, userID string) (*models.OfferListResponse, error) {
	settings, err := s.store.Settings(ctx)
	if err != nil {
		s.logger.Error("EligibleOffers: store error: %v", err)
		return nil, fmt.Errorf("%w: EligibleOffers - store error: %v", ErrInternal, err)
	}

	eligible := settings.EligibleOffers(userID, s.timeProvider.Now())
	s.logger.Info("EligibleOffers: user=%s has %d offers", userID, len(eligible))
	return models.FromDomainOfferList(eligible), nil
}

// mutate читает настройки, применяет изменение и сохраняет их в одной транзакции
func (s *Service) mutate(ctx context.Context, op string, apply func(settings *domain.AppSettings) error) error {
	return s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
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
		return nil
	})
}
