package tournaments

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/m04kA/SMC-DartsBookingService/internal/bracket"
	"github.com/m04kA/SMC-DartsBookingService/internal/domain"
	"github.com/m04kA/SMC-DartsBookingService/internal/service/tournaments/models"
)

var validate = validator.New()

// Service сервис жизненного цикла турниров: создание, запись, посев, старт, результаты и призы
type Service struct {
	store           SnapshotStore
	txManager       TransactionManager
	metrics         MetricsRecorder
	timeProvider    TimeProvider
	newShuffler     func() bracket.Shuffler
	defaultDuration time.Duration
	prizeValidity   time.Duration
	logger          Logger
}

// NewService создает новый экземпляр сервиса турниров
func NewService(
	store SnapshotStore,
	txManager TransactionManager,
	metrics MetricsRecorder,
	defaultDurationHours int,
	prizeValidityDays int,
	logger Logger,
) *Service {
	return &Service{
		store:        store,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		newShuffler: func() bracket.Shuffler {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
		defaultDuration: time.Duration(defaultDurationHours) * time.Hour,
		prizeValidity:   time.Duration(prizeValidityDays) * domain.HoursPerDay * time.Hour,
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// WithShuffler подменяет перемешивание участников без посева (для тестов)
func (s *Service) WithShuffler(shuffler bracket.Shuffler) *Service {
	s.newShuffler = func() bracket.Shuffler { return shuffler }
	return s
}

// List возвращает все турниры по времени начала
func (s *Service) List(ctx context.Context) (*models.TournamentListResponse, error) {
	tournaments, err := s.store.Tournaments(ctx)
	if err != nil {
		s.logger.Error("List: store error: %v", err)
		return nil, fmt.Errorf("%w: List - store error: %v", ErrInternal, err)
	}

	sortByStart(tournaments)
	return models.FromDomainTournamentList(tournaments), nil
}

// Active возвращает турниры, которые еще не закончились, по времени начала
func (s *Service) Active(ctx context.Context) (*models.TournamentListResponse, error) {
	tournaments, err := s.store.Tournaments(ctx)
	if err != nil {
		s.logger.Error("Active: store error: %v", err)
		return nil, fmt.Errorf("%w: Active - store error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	active := lo.Filter(tournaments, func(t domain.Tournament, _ int) bool { return t.End.After(now) })
	sortByStart(active)

	s.logger.Info("Active: %d of %d tournaments are upcoming or running", len(active), len(tournaments))
	return models.FromDomainTournamentList(active), nil
}

// GetByID получает турнир по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.TournamentResponse, error) {
	tournaments, err := s.store.Tournaments(ctx)
	if err != nil {
		s.logger.Error("GetByID: store error: %v", err)
		return nil, fmt.Errorf("%w: GetByID - store error: %v", ErrInternal, err)
	}

	t, ok := lo.Find(tournaments, func(t domain.Tournament) bool { return t.ID == id })
	if !ok {
		s.logger.Warn("GetByID: tournament id=%s not found", id)
		return nil, ErrTournamentNotFound
	}
	return models.FromDomainTournament(t), nil
}

// Create создает турнир в статусе open; окончание = начало + длительность
func (s *Service) Create(ctx context.Context, req *models.CreateTournamentRequest) (*models.TournamentResponse, error) {
	s.logger.Info("Create: name=%s, start=%s, duration=%dh, format=%s, prizes=%d",
		req.Name, req.Start.Format(time.RFC3339), req.DurationHours, req.Format, len(req.Prizes))

	if err := validate.Struct(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := req.ValidatePrizes(); err != nil {
		s.logger.Warn("Create: invalid prizes: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	duration := s.defaultDuration
	if req.DurationHours > 0 {
		duration = time.Duration(req.DurationHours) * time.Hour
	}
	format := req.Format
	if format == "" {
		format = domain.FormatSingle
	}

	prizes := append([]domain.TournamentPrize(nil), req.Prizes...)
	sort.SliceStable(prizes, func(i, j int) bool { return prizes[i].Rank < prizes[j].Rank })

	created := domain.Tournament{
		ID:           "tourney-" + uuid.NewString(),
		Name:         req.Name,
		Start:        req.Start,
		End:          req.Start.Add(duration),
		Format:       format,
		Status:       domain.TournamentOpen,
		Participants: []domain.TournamentParticipant{},
		Matches:      []domain.TournamentMatch{},
		Prizes:       prizes,
	}

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		tournaments, err := s.store.Tournaments(txCtx)
		if err != nil {
			s.logger.Error("Create: failed to get tournaments: %v", err)
			return fmt.Errorf("%w: Create - failed to get tournaments: %v", ErrInternal, err)
		}
		if err := s.store.SaveTournaments(txCtx, append(tournaments, created)); err != nil {
			s.logger.Error("Create: failed to save tournaments: %v", err)
			return fmt.Errorf("%w: Create - failed to save tournaments: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Create: successfully created tournament id=%s", created.ID)
	return models.FromDomainTournament(created), nil
}

// Delete удаляет турнир в любом статусе
func (s *Service) Delete(ctx context.Context, id string) error {
	s.logger.Info("Delete: deleting tournament id=%s", id)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		tournaments, err := s.store.Tournaments(txCtx)
		if err != nil {
			s.logger.Error("Delete: failed to get tournaments: %v", err)
			return fmt.Errorf("%w: Delete - failed to get tournaments: %v", ErrInternal, err)
		}

		remaining := lo.Reject(tournaments, func(t domain.Tournament, _ int) bool { return t.ID == id })
		if len(remaining) == len(tournaments) {
			s.logger.Warn("Delete: tournament id=%s not found", id)
			return ErrTournamentNotFound
		}

		if err := s.store.SaveTournaments(txCtx, remaining); err != nil {
			s.logger.Error("Delete: failed to save tournaments: %v", err)
			return fmt.Errorf("%w: Delete - failed to save tournaments: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Delete: successfully deleted tournament id=%s", id)
	return nil
}

// Register записывает пользователя в турнир или отменяет запись, если он уже участвует
// Имя участника - название команды или имя пользователя; партнер допустим только в парном формате
func (s *Service) Register(ctx context.Context, tournamentID string, req *models.RegisterRequest) (*models.RegistrationResponse, error) {
	s.logger.Info("Register: tournament=%s, user=%s, team=%q, partner=%s",
		tournamentID, req.UserID, req.TeamName, req.PartnerID)

	if err := validate.Struct(req); err != nil {
		s.logger.Warn("Register: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	resp := &models.RegistrationResponse{}
	err := s.update(ctx, "Register", tournamentID, func(txCtx context.Context, t *domain.Tournament) error {
		if t.Status != domain.TournamentOpen {
			return fmt.Errorf("%w: status=%s", ErrRegistrationClosed, t.Status)
		}

		user, err := s.activeUser(txCtx, req.UserID)
		if err != nil {
			return err
		}

		if idx := t.ParticipantIndexOfUser(user.ID); idx >= 0 {
			t.Participants = append(t.Participants[:idx], t.Participants[idx+1:]...)
			return nil
		}

		userIDs := []string{user.ID}
		if req.PartnerID != "" {
			if t.Format != domain.FormatDouble {
				return fmt.Errorf("%w: partners are only allowed in doubles", ErrInvalidInput)
			}
			partner, err := s.activeUser(txCtx, req.PartnerID)
			if err != nil {
				return err
			}
			if t.ParticipantIndexOfUser(partner.ID) >= 0 {
				return fmt.Errorf("%w: id=%s", ErrAlreadyRegistered, partner.ID)
			}
			userIDs = append(userIDs, partner.ID)
		}

		name := req.TeamName
		if name == "" {
			name = user.Name
		}
		participant := domain.TournamentParticipant{
			ID:      "part-" + uuid.NewString(),
			Name:    name,
			UserIDs: userIDs,
		}
		t.Participants = append(t.Participants, participant)

		resp.Registered = true
		resp.Participant = &participant
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Register: user=%s registered=%t in tournament=%s", req.UserID, resp.Registered, tournamentID)
	return resp, nil
}

// UpdateSeed назначает посев участнику (0 снимает посев); только до старта
func (s *Service) UpdateSeed(ctx context.Context, tournamentID, participantID string, req *models.UpdateSeedRequest) (*models.TournamentResponse, error) {
	s.logger.Info("UpdateSeed: tournament=%s, participant=%s, seed=%d", tournamentID, participantID, req.Seed)

	if err := validate.Struct(req); err != nil {
		s.logger.Warn("UpdateSeed: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var updated domain.Tournament
	err := s.update(ctx, "UpdateSeed", tournamentID, func(_ context.Context, t *domain.Tournament) error {
		if t.Status != domain.TournamentOpen {
			return fmt.Errorf("%w: seeds are fixed once the tournament is %s", ErrInvalidStatus, t.Status)
		}
		participant, ok := t.Participant(participantID)
		if !ok {
			return fmt.Errorf("%w: id=%s", ErrParticipantNotFound, participantID)
		}
		participant.Seed = req.Seed
		updated = *t
		return nil
	})
	if err != nil {
		return nil, err
	}

	return models.FromDomainTournament(updated), nil
}

// AutoSeed назначает посев по порядку записи
func (s *Service) AutoSeed(ctx context.Context, tournamentID string) (*models.TournamentResponse, error) {
	s.logger.Info("AutoSeed: tournament=%s", tournamentID)

	var updated domain.Tournament
	err := s.update(ctx, "AutoSeed", tournamentID, func(_ context.Context, t *domain.Tournament) error {
		if t.Status != domain.TournamentOpen {
			return fmt.Errorf("%w: seeds are fixed once the tournament is %s", ErrInvalidStatus, t.Status)
		}
		for i := range t.Participants {
			t.Participants[i].Seed = i + 1
		}
		updated = *t
		return nil
	})
	if err != nil {
		return nil, err
	}

	return models.FromDomainTournament(updated), nil
}

// Start переводит турнир из open в active и строит сетку
func (s *Service) Start(ctx context.Context, tournamentID string) (*models.TournamentResponse, error) {
	s.logger.Info("Start: tournament=%s", tournamentID)

	var updated domain.Tournament
	err := s.update(ctx, "Start", tournamentID, func(_ context.Context, t *domain.Tournament) error {
		if t.Status != domain.TournamentOpen {
			return fmt.Errorf("%w: cannot start a %s tournament", ErrInvalidStatus, t.Status)
		}
		if len(t.Participants) < domain.MinBracketSize {
			return fmt.Errorf("%w: have %d, need %d", ErrNotEnoughParticipants, len(t.Participants), domain.MinBracketSize)
		}
		t.Matches = bracket.Generate(t.Participants, s.newShuffler())
		t.Status = domain.TournamentActive
		updated = *t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Start: tournament=%s started with %d participants and %d matches",
		tournamentID, len(updated.Participants), len(updated.Matches))
	return models.FromDomainTournament(updated), nil
}

// Advance фиксирует победителя матча и продвигает его по сетке
// Результат можно исправить, пока призы не выданы
func (s *Service) Advance(ctx context.Context, tournamentID, matchID string, req *models.AdvanceRequest) (*models.TournamentResponse, error) {
	s.logger.Info("Advance: tournament=%s, match=%s, winner=%s", tournamentID, matchID, req.WinnerID)

	if err := validate.Struct(req); err != nil {
		s.logger.Warn("Advance: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var (
		updated domain.Tournament
		final   bool
	)
	err := s.update(ctx, "Advance", tournamentID, func(_ context.Context, t *domain.Tournament) error {
		if t.Status == domain.TournamentOpen || t.PrizesDistributed {
			return fmt.Errorf("%w: results are locked (status=%s, prizesDistributed=%t)",
				ErrInvalidStatus, t.Status, t.PrizesDistributed)
		}

		idx := t.MatchIndex(matchID)
		if idx < 0 {
			return fmt.Errorf("%w: id=%s", ErrMatchNotFound, matchID)
		}
		match := t.Matches[idx]
		if req.WinnerID != match.P1ID && req.WinnerID != match.P2ID {
			return fmt.Errorf("%w: match %s is %q vs %q", ErrInvalidWinner, matchID, match.P1ID, match.P2ID)
		}

		next, ok := bracket.Advance(*t, matchID, req.WinnerID)
		if !ok {
			return fmt.Errorf("%w: id=%s", ErrMatchNotFound, matchID)
		}
		*t = next
		updated = next
		final = match.IsFinal()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordMatchResult(final)
	s.logger.Info("Advance: tournament=%s match=%s won by %s, status=%s", tournamentID, matchID, req.WinnerID, updated.Status)
	return models.FromDomainTournament(updated), nil
}

// DistributePrizes превращает призы завершенного турнира в предложения для победителей
// Предложения добавляются в настройки, а турнир помечается одной транзакцией
func (s *Service) DistributePrizes(ctx context.Context, tournamentID string) (*models.PrizesResponse, error) {
	s.logger.Info("DistributePrizes: tournament=%s", tournamentID)

	now := s.timeProvider.Now()
	var offers []domain.SpecialOffer

	err := s.update(ctx, "DistributePrizes", tournamentID, func(txCtx context.Context, t *domain.Tournament) error {
		next, created, err := bracket.DistributePrizes(*t, now, bracket.PrizeOptions{Validity: s.prizeValidity})
		switch {
		case errors.Is(err, bracket.ErrNoPrizes):
			return ErrNoPrizes
		case err != nil:
			return fmt.Errorf("%w: %w", ErrPrizesUnavailable, err)
		}

		settings, err := s.store.Settings(txCtx)
		if err != nil {
			return fmt.Errorf("%w: DistributePrizes - failed to get settings: %v", ErrInternal, err)
		}
		settings = settings.Clone()
		settings.SpecialOffers = append(settings.SpecialOffers, created...)
		if err := s.store.SaveSettings(txCtx, settings); err != nil {
			return fmt.Errorf("%w: DistributePrizes - failed to save settings: %v", ErrInternal, err)
		}

		*t = next
		offers = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	for offerType, group := range lo.GroupBy(offers, func(o domain.SpecialOffer) domain.OfferType { return o.Type }) {
		s.metrics.RecordPrizeOffers(string(offerType), len(group))
	}

	s.logger.Info("DistributePrizes: tournament=%s issued %d offers", tournamentID, len(offers))
	return &models.PrizesResponse{Offers: offers, Count: len(offers)}, nil
}

// Вспомогательные методы

// update читает турниры, изменяет один из них и сохраняет снимок в одной транзакции
func (s *Service) update(ctx context.Context, op, tournamentID string, apply func(txCtx context.Context, t *domain.Tournament) error) error {
	return s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		tournaments, err := s.store.Tournaments(txCtx)
		if err != nil {
			s.logger.Error("%s: failed to get tournaments: %v", op, err)
			return fmt.Errorf("%w: %s - failed to get tournaments: %v", ErrInternal, op, err)
		}

		_, idx, ok := lo.FindIndexOf(tournaments, func(t domain.Tournament) bool { return t.ID == tournamentID })
		if !ok {
			s.logger.Warn("%s: tournament id=%s not found", op, tournamentID)
			return ErrTournamentNotFound
		}

		t := tournaments[idx].Clone()
		if err := apply(txCtx, &t); err != nil {
			if errors.Is(err, ErrInternal) {
				s.logger.Error("%s: %v", op, err)
			} else {
				s.logger.Warn("%s: rejected: %v", op, err)
			}
			return err
		}
		tournaments[idx] = t

		if err := s.store.SaveTournaments(txCtx, tournaments); err != nil {
			s.logger.Error("%s: failed to save tournaments: %v", op, err)
			return fmt.Errorf("%w: %s - failed to save tournaments: %v", ErrInternal, op, err)
		}
		return nil
	})
}

// activeUser загружает пользователя и проверяет, что он не заблокирован
func (s *Service) activeUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.store.User(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: id=%s", ErrUserNotFound, userID)
	}
	if user.Blocked {
		return nil, fmt.Errorf("%w: id=%s", ErrUserBlocked, userID)
	}
	return user, nil
}

func sortByStart(tournaments []domain.Tournament) {
	sort.SliceStable(tournaments, func(i, j int) bool {
		return tournaments[i].Start.Before(tournaments[j].Start)
	})
}
