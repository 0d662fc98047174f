package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-DartsBookingService/internal/availability"
	"github.com/m04kA/SMC-DartsBookingService/internal/domain"
)

// weekOrder порядок дней в сетке: неделя начинается с понедельника и закрывается воскресеньем
var weekOrder = []int{1, 2, 3, 4, 5, 6, 0}

// UseCase use case для получения сетки доступных слотов недели
type UseCase struct {
	store        SnapshotStore
	timeProvider TimeProvider
	logger       Logger
	loc          *time.Location
	horizon      time.Duration
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(store SnapshotStore, loc *time.Location, horizonDays int, logger Logger) *UseCase {
	return &UseCase{
		store:        store,
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

// Execute выполняет use case получения сетки слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%s, week=%s, machine=%s", req.UserID, req.WeekStart, req.MachineID)

	// 1. Валидация входных данных
	if _, err := domain.ParseWeekStart(req.WeekStart, uc.loc); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Читаем снимки
	settings, err := uc.store.Settings(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	machineID := req.MachineID
	if machineID == "" && len(settings.Machines) > 0 {
		machineID = settings.Machines[0].ID
	}
	if !settings.HasMachine(machineID) {
		uc.logger.Warn("GetAvailableSlots: machine id=%s not found", machineID)
		return nil, fmt.Errorf("%w: id=%s", ErrMachineNotFound, machineID)
	}

	appointments, err := uc.store.Appointments(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	tournaments, err := uc.store.Tournaments(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get tournaments: %v", err)
		return nil, fmt.Errorf("%w: failed to get tournaments: %v", ErrInternal, err)
	}

	// 4. Строим сетку по дням
	rules := availability.Rules{
		Settings:     settings,
		Tournaments:  tournaments,
		Appointments: appointments,
		Now:          now,
		Loc:          uc.loc,
		Horizon:      uc.horizon,
	}

	days := make([]Day, 0, len(weekOrder))
	free := 0
	for _, dayIndex := range weekOrder {
		day, err := uc.buildDay(rules, req.WeekStart, dayIndex, machineID, req.UserID)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to build day=%d: %v", dayIndex, err)
			return nil, fmt.Errorf("%w: failed to build day: %v", ErrInternal, err)
		}
		for _, s := range day.Slots {
			if s.Status == availability.StatusAvailable {
				free++
			}
		}
		days = append(days, day)
	}

	uc.logger.Info("GetAvailableSlots: week=%s, machine=%s, %d slots available", req.WeekStart, machineID, free)

	return &Response{
		WeekStart: req.WeekStart,
		MachineID: machineID,
		BasePrice: settings.BasePrice,
		Currency:  settings.Currency,
		Days:      days,
	}, nil
}

func (uc *UseCase) buildDay(rules availability.Rules, weekStart string, dayIndex int, machineID, userID string) (Day, error) {
	date, err := domain.SlotDate(weekStart, dayIndex, uc.loc)
	if err != nil {
		return Day{}, err
	}

	day := Day{
		DayIndex: dayIndex,
		Date:     date.Format(domain.DateFormat),
		Blocked:  rules.Settings.IsBlocked(date.Format(domain.DateFormat)),
		Slots:    []Slot{},
	}

	hours, ok := rules.Settings.WorkingHours[dayIndex]
	if !ok || hours.End <= hours.Start {
		return day, nil
	}
	day.Open = true

	for hour := hours.Start; hour < hours.End; hour++ {
		status, appointment, err := rules.Check(weekStart, domain.Slot{DayIndex: dayIndex, Hour: hour}, machineID, userID)
		if err != nil {
			return Day{}, err
		}

		slot := Slot{Hour: hour, Status: status}
		if status == availability.StatusMine && appointment != nil {
			slot.AppointmentID = appointment.ID
			slot.Price = appointment.Price
			slot.DiscountRule = appointment.DiscountRule
		}
		day.Slots = append(day.Slots, slot)
	}

	return day, nil
}
