package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/m04kA/SMC-DartsBookingService/internal/domain"
	"github.com/m04kA/SMC-DartsBookingService/internal/pricing"
)

// IDGenerator выдает идентификаторы новых бронирований
type IDGenerator func() string

// State снимок данных, которыми владеет журнал бронирований
type State struct {
	Appointments []domain.Appointment
	Settings     domain.AppSettings
}

// CreateRequest набор слотов одной брони
type CreateRequest struct {
	Slots     []domain.Slot
	MachineID string
	OfferID   string
	User      domain.User
	WeekStart string
}

// Ledger чистые преобразования журнала бронирований.
// Входные снимки никогда не изменяются, каждый вызов возвращает новый State.
type Ledger struct {
	loc    *time.Location
	cutoff time.Duration
	newID  IDGenerator
}

// Option настройка Ledger
type Option func(*Ledger)

// WithIDGenerator подменяет генератор идентификаторов (для тестов)
func WithIDGenerator(gen IDGenerator) Option {
	return func(l *Ledger) {
		l.newID = gen
	}
}

// WithCancellationCutoff задает минимальный срок до начала слота для отмены
func WithCancellationCutoff(cutoff time.Duration) Option {
	return func(l *Ledger) {
		l.cutoff = cutoff
	}
}

// New создает журнал, работающий во временной зоне площадки
func New(loc *time.Location, opts ...Option) *Ledger {
	if loc == nil {
		loc = time.Local
	}
	l := &Ledger{
		loc:    loc,
		cutoff: domain.DefaultCancellationCutoff,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Create добавляет бронирования для всех запрошенных слотов и пересчитывает скидку
// за количество в каждом затронутом дне. Использованное предложение помечается used.
func (l *Ledger) Create(state State, req CreateRequest, eligible []domain.SpecialOffer) (State, []domain.Appointment, error) {
	if err := validateCreate(req); err != nil {
		return state, nil, err
	}

	offer := pricing.FindOffer(eligible, req.OfferID)
	if req.OfferID != "" && offer == nil {
		return state, nil, fmt.Errorf("%w: offer id=%s", ErrOfferNotEligible, req.OfferID)
	}

	slots := append([]domain.Slot(nil), req.Slots...)
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].Ordinal() < slots[j].Ordinal()
	})

	for i, slot := range slots {
		if i > 0 && slots[i-1] == slot {
			return state, nil, &SlotTakenError{Slot: slot, MachineID: req.MachineID, Duplicate: true}
		}
		taken := lo.ContainsBy(state.Appointments, func(a domain.Appointment) bool {
			return a.Occupies(req.WeekStart, slot, req.MachineID)
		})
		if taken {
			return state, nil, &SlotTakenError{Slot: slot, MachineID: req.MachineID}
		}
	}

	basePrice := pricing.Money(state.Settings.BasePrice)
	freeSlotsRemaining := 0
	if offer != nil {
		freeSlotsRemaining = offer.FreeSlots()
	}

	created := make([]domain.Appointment, 0, len(slots))
	for i, slot := range slots {
		before := freeSlotsRemaining
		price, remaining := pricing.ApplyOffer(basePrice, offer, freeSlotsRemaining)
		freeSlotsRemaining = remaining

		appointment := domain.Appointment{
			ID:        l.newID(),
			WeekStart: req.WeekStart,
			DayIndex:  slot.DayIndex,
			Hour:      slot.Hour,
			UserID:    req.User.ID,
			UserName:  req.User.Name,
			MachineID: req.MachineID,
			Price:     pricing.RoundCents(price),
		}
		if offerClaims(offer, i, before != remaining) {
			appointment.OfferID = offer.ID
		}
		created = append(created, appointment)
	}

	next := State{
		Appointments: append(append(make([]domain.Appointment, 0, len(state.Appointments)+len(created)), state.Appointments...), created...),
		Settings:     state.Settings.Clone(),
	}

	days := lo.Uniq(lo.Map(slots, func(s domain.Slot, _ int) int { return s.DayIndex }))
	for _, day := range days {
		repriceDay(next.Appointments, next.Settings, req.User.ID, req.WeekStart, day)
	}

	if offer != nil && !offer.IsTemplate {
		if idx := next.Settings.OfferIndex(offer.ID); idx >= 0 {
			next.Settings.SpecialOffers[idx].Used = true
		}
	}

	// repriceDay мог изменить цены только что созданных бронирований
	ids := lo.SliceToMap(created, func(a domain.Appointment) (string, struct{}) { return a.ID, struct{}{} })
	result := lo.Filter(next.Appointments, func(a domain.Appointment, _ int) bool {
		_, ok := ids[a.ID]
		return ok
	})

	return next, result, nil
}

// Cancel удаляет бронирование, возвращает использованное предложение и пересчитывает
// скидку за количество для оставшихся бронирований того же дня.
func (l *Ledger) Cancel(state State, appointmentID string, now time.Time) (State, domain.Appointment, error) {
	cancelled, idx, found := lo.FindIndexOf(state.Appointments, func(a domain.Appointment) bool {
		return a.ID == appointmentID
	})
	if !found {
		return state, domain.Appointment{}, fmt.Errorf("%w: id=%s", ErrAppointmentNotFound, appointmentID)
	}

	start, err := cancelled.StartsAt(l.loc)
	if err != nil {
		return state, domain.Appointment{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	hoursLeft := start.Sub(now).Hours()
	if hoursLeft < l.cutoff.Hours() {
		return state, domain.Appointment{}, &TooLateError{HoursLeft: hoursLeft}
	}

	next := State{
		Appointments: make([]domain.Appointment, 0, len(state.Appointments)-1),
		Settings:     state.Settings.Clone(),
	}
	next.Appointments = append(next.Appointments, state.Appointments[:idx]...)
	next.Appointments = append(next.Appointments, state.Appointments[idx+1:]...)

	if cancelled.HasOffer() {
		stillUsed := lo.ContainsBy(next.Appointments, func(a domain.Appointment) bool {
			return a.OfferID == cancelled.OfferID
		})
		if offerIdx := next.Settings.OfferIndex(cancelled.OfferID); offerIdx >= 0 && !stillUsed {
			next.Settings.SpecialOffers[offerIdx].Used = false
		}
	}

	repriceDay(next.Appointments, next.Settings, cancelled.UserID, cancelled.WeekStart, cancelled.DayIndex)

	return next, cancelled, nil
}

// repriceDay пересчитывает цены бронирований без предложения в группе пользователь/неделя/день
func repriceDay(appointments []domain.Appointment, settings domain.AppSettings, userID, weekStart string, dayIndex int) {
	count := lo.CountBy(appointments, func(a domain.Appointment) bool {
		return a.InDayGroup(userID, weekStart, dayIndex)
	})
	tier, ok := pricing.ResolveTier(settings.ConsecutiveDiscountTiers, count)

	basePrice := pricing.Money(settings.BasePrice)
	for i := range appointments {
		a := &appointments[i]
		if !a.InDayGroup(userID, weekStart, dayIndex) || a.HasOffer() {
			continue
		}
		if ok {
			a.Price = pricing.RoundCents(pricing.ApplyPercent(basePrice, tier.Discount))
			a.DiscountRule = tier.Label()
			continue
		}
		a.Price = settings.BasePrice
		a.DiscountRule = ""
	}
}

// offerClaims решает, закрепляется ли предложение за бронированием:
// fixed/discount меняют цену всех слотов, free_slot только обнуленных, free_drink выдается с первым слотом
func offerClaims(offer *domain.SpecialOffer, position int, consumedFreeSlot bool) bool {
	if offer == nil {
		return false
	}
	switch offer.Type {
	case domain.OfferFixedPrice, domain.OfferDiscountPercent:
		return true
	case domain.OfferFreeSlot:
		return consumedFreeSlot
	case domain.OfferFreeDrink:
		return position == 0
	default:
		return false
	}
}

func validateCreate(req CreateRequest) error {
	if len(req.Slots) == 0 {
		return fmt.Errorf("%w: no slots selected", ErrInvalidInput)
	}
	if req.MachineID == "" {
		return fmt.Errorf("%w: machine id is required", ErrInvalidInput)
	}
	if req.User.ID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if _, err := domain.ParseWeekStart(req.WeekStart, time.UTC); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	for _, slot := range req.Slots {
		if !slot.IsValid() {
			return fmt.Errorf("%w: slot day=%d hour=%d is outside the week grid", ErrInvalidInput, slot.DayIndex, slot.Hour)
		}
	}
	return nil
}
