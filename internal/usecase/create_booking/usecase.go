package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RageRoomService/internal/domain"
	"github.com/m04kA/SMC-RageRoomService/internal/infra/slotlock"
	calendarClient "github.com/m04kA/SMC-RageRoomService/internal/integrations/googlecalendar"
	"github.com/m04kA/SMC-RageRoomService/pkg/metrics"
)

const defaultLockTTL = 30 * time.Second

// UseCase use case для создания бронирования
// Проверяет слот непосредственно перед созданием события во внешнем календаре
type UseCase struct {
	hours        BusinessHours
	calendar     Calendar
	locker       SlotLocker
	notifier     Notifier
	opts         Options
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// locker и notifier опциональны (nil)
func NewUseCase(
	hours BusinessHours,
	calendar Calendar,
	locker SlotLocker,
	notifier Notifier,
	opts Options,
	m Metrics,
	logger Logger,
) *UseCase {
	if locker == nil {
		locker = slotlock.NoopLocker{}
	}
	if m == nil {
		m = (*metrics.Metrics)(nil)
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.MaxPartySize <= 0 {
		opts.MaxPartySize = domain.DefaultMaxPartySize
	}
	if opts.LockTTL <= 0 {
		opts.LockTTL = defaultLockTTL
	}

	return &UseCase{
		hours:        hours,
		calendar:     calendar,
		locker:       locker,
		notifier:     notifier,
		opts:         opts,
		metrics:      m,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
//
// Гарантия ограничена: между повторной проверкой занятости и созданием события
// остается окно гонки, т.к. у внешнего календаря нет транзакций.
// Блокировка слота в Redis сужает это окно между инстансами сервиса.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	uc.logger.Info("CreateBooking: date=%s, time=%s, group=%d", req.Date, req.StartTime, req.PartySize)

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.opts.MaxPartySize); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.metrics.IncBooking(outcomeRejected)
		return nil, err
	}

	// 2. Текущее время в часовом поясе заведения
	now := uc.timeProvider.Now().In(uc.opts.Location)
	today := domain.DateOf(now)

	// 3. Валидация даты
	if err := validateDate(req.Date, today, uc.opts.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		uc.metrics.IncBooking(outcomeRejected)
		return nil, err
	}

	// 4. Слот должен входить в шаблон дня
	if len(uc.hours.SlotsForDate(req.Date)) == 0 {
		uc.logger.Warn("CreateBooking: closed on %s (%s)", req.Date, req.Date.Weekday())
		uc.metrics.IncBooking(outcomeRejected)
		return nil, ErrClosed
	}
	if !uc.hours.IsBookable(req.Date, req.StartTime) {
		uc.logger.Warn("CreateBooking: time=%s is outside business hours on %s", req.StartTime, req.Date)
		uc.metrics.IncBooking(outcomeRejected)
		return nil, ErrInvalidTimeSlot
	}

	slot := domain.Slot{Date: req.Date, Start: req.StartTime}
	slotStart, slotEnd := slot.Interval(uc.opts.Location)

	// 5. Сегодняшний слот, который уже начался, бронировать нельзя
	if !slotStart.After(now) {
		uc.logger.Warn("CreateBooking: slot %s %s has already started", req.Date, req.StartTime)
		uc.metrics.IncBooking(outcomeRejected)
		return nil, ErrTooLateToBook
	}

	// 6. Блокировка слота (best effort)
	release, err := uc.locker.Acquire(ctx, slotKey(slot), uc.opts.LockTTL)
	switch {
	case errors.Is(err, slotlock.ErrLocked):
		uc.logger.Warn("CreateBooking: slot %s %s is being booked by another request", req.Date, req.StartTime)
		uc.metrics.IncSlotConflict()
		uc.metrics.IncBooking(outcomeConflict)
		return nil, ErrSlotConflict
	case err != nil:
		uc.logger.Warn("CreateBooking: slot lock unavailable, proceeding without it: %v", err)
	default:
		defer release()
	}

	// 7. Свежая проверка занятости; здесь fail-open не применяется
	busy, err := uc.calendar.ListBusyIntervals(ctx, req.Date.StartOfDay(uc.opts.Location), req.Date.EndOfDay(uc.opts.Location))
	if err != nil {
		uc.logger.Error("CreateBooking: failed to re-check availability for %s %s: %v", req.Date, req.StartTime, err)
		uc.metrics.IncBooking(outcomeFailed)
		return nil, mapCalendarError(err, "failed to read busy intervals")
	}

	if conflict, found := slot.FindConflict(busy, uc.opts.Location); found {
		uc.logger.Warn("CreateBooking: slot %s %s conflicts with %q [%s - %s]",
			req.Date, req.StartTime, conflict.Label,
			conflict.Start.Format(time.RFC3339), conflict.End.Format(time.RFC3339))
		uc.metrics.IncSlotConflict()
		uc.metrics.IncBooking(outcomeConflict)
		return nil, ErrSlotConflict
	}

	// 8. Создаем событие ровно один раз
	bookingReq := domain.BookingRequest{
		Slot:      slot,
		PartySize: req.PartySize,
		Customer: domain.Customer{
			FirstName:       req.FirstName,
			LastName:        req.LastName,
			Phone:           req.Phone,
			Email:           req.Email,
			SpecialRequests: req.SpecialRequests,
		},
	}

	event, err := uc.calendar.CreateEvent(ctx, bookingReq)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to create event for %s %s: %v", req.Date, req.StartTime, err)
		uc.metrics.IncBooking(outcomeFailed)
		return nil, mapCalendarError(err, "failed to create event")
	}

	reservation := domain.Reservation{
		EventID:   event.ID,
		EventLink: event.HTMLLink,
		Slot:      slot,
		PartySize: req.PartySize,
		Customer:  bookingReq.Customer,
		StartTime: slotStart,
		EndTime:   slotEnd,
	}

	uc.metrics.IncBooking(outcomeCreated)
	uc.logger.Info("CreateBooking: successfully created event id=%s for %s %s, group=%d",
		event.ID, req.Date, req.StartTime, req.PartySize)

	// 9. Подтверждения уходят в фоне и не влияют на результат
	if uc.notifier != nil {
		uc.notifier.NotifyBooking(ctx, reservation)
	}

	return &Response{
		EventID:   reservation.EventID,
		EventLink: reservation.EventLink,
		Date:      req.Date,
		StartTime: req.StartTime,
		PartySize: req.PartySize,
		Start:     slotStart,
		End:       slotEnd,
	}, nil
}

// mapCalendarError сопоставляет ошибку клиента календаря с ошибкой usecase
func mapCalendarError(err error, action string) error {
	switch {
	case errors.Is(err, calendarClient.ErrPermissionDenied):
		return fmt.Errorf("%w: %s: %v", ErrCalendarPermission, action, err)
	case errors.Is(err, calendarClient.ErrUnavailable):
		return fmt.Errorf("%w: %s: %v", ErrCalendarUnavailable, action, err)
	default:
		return fmt.Errorf("%w: %s: %v", ErrInternal, action, err)
	}
}

func slotKey(slot domain.Slot) string {
	return slot.Date.String() + "T" + slot.Start.String()
}
