package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DartsBookingService/internal/domain"
)

// Store типизированный доступ к снимкам appointments, settings, tournaments и users.
// Отсутствующий снимок читается как пустой (settings как настройки по умолчанию).
type Store struct {
	kv KeyValue
}

// NewStore создает типизированное хранилище поверх key-value драйвера
func NewStore(kv KeyValue) *Store {
	return &Store{kv: kv}
}

func (s *Store) Appointments(ctx context.Context) ([]domain.Appointment, error) {
	appointments := []domain.Appointment{}
	if err := s.load(ctx, domain.KeyAppointments, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

func (s *Store) SaveAppointments(ctx context.Context, appointments []domain.Appointment) error {
	if appointments == nil {
		appointments = []domain.Appointment{}
	}
	return s.save(ctx, domain.KeyAppointments, appointments)
}

// Settings читает настройки площадки и дополняет поля, которых не было в старых снимках
func (s *Store) Settings(ctx context.Context) (domain.AppSettings, error) {
	payload, err := s.kv.Get(ctx, domain.KeySettings)
	if errors.Is(err, ErrSnapshotNotFound) {
		return domain.DefaultSettings(), nil
	}
	if err != nil {
		return domain.AppSettings{}, err
	}

	var settings domain.AppSettings
	if err := json.Unmarshal(payload, &settings); err != nil {
		return domain.AppSettings{}, fmt.Errorf("%w: key=%s: %v", ErrDecode, domain.KeySettings, err)
	}
	settings.ApplyDefaults()
	return settings, nil
}

func (s *Store) SaveSettings(ctx context.Context, settings domain.AppSettings) error {
	return s.save(ctx, domain.KeySettings, settings)
}

func (s *Store) Tournaments(ctx context.Context) ([]domain.Tournament, error) {
	tournaments := []domain.Tournament{}
	if err := s.load(ctx, domain.KeyTournaments, &tournaments); err != nil {
		return nil, err
	}
	return tournaments, nil
}

func (s *Store) SaveTournaments(ctx context.Context, tournaments []domain.Tournament) error {
	if tournaments == nil {
		tournaments = []domain.Tournament{}
	}
	return s.save(ctx, domain.KeyTournaments, tournaments)
}

func (s *Store) Users(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}
	if err := s.load(ctx, domain.KeyUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) SaveUsers(ctx context.Context, users []domain.User) error {
	if users == nil {
		users = []domain.User{}
	}
	return s.save(ctx, domain.KeyUsers, users)
}

// User ищет зарегистрированного пользователя по id
func (s *Store) User(ctx context.Context, id string) (*domain.User, error) {
	users, err := s.Users(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, nil
}

func (s *Store) load(ctx context.Context, key string, dst any) error {
	payload, err := s.kv.Get(ctx, key)
	if errors.Is(err, ErrSnapshotNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return fmt.Errorf("%w: key=%s: %v", ErrDecode, key, err)
	}
	return nil
}

func (s *Store) save(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: key=%s: %v", ErrEncode, key, err)
	}
	return s.kv.Put(ctx, key, payload)
}
