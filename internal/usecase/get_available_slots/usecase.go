package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RageRoomService/internal/domain"
	calendarClient "github.com/m04kA/SMC-RageRoomService/internal/integrations/googlecalendar"
	"github.com/m04kA/SMC-RageRoomService/pkg/metrics"
	"github.com/m04kA/SMC-RageRoomService/pkg/types"
)

// UseCase use case для получения свободных слотов на дату
type UseCase struct {
	hours              BusinessHours
	busySource         BusyIntervalSource
	location           *time.Location
	advanceBookingDays int
	metrics            Metrics
	timeProvider       TimeProvider
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
// advanceBookingDays = 0 означает отсутствие ограничения на дату
func NewUseCase(
	hours BusinessHours,
	busySource BusyIntervalSource,
	location *time.Location,
	advanceBookingDays int,
	m Metrics,
	logger Logger,
) *UseCase {
	if m == nil {
		m = (*metrics.Metrics)(nil)
	}
	return &UseCase{
		hours:              hours,
		busySource:         busySource,
		location:           location,
		advanceBookingDays: advanceBookingDays,
		metrics:            m,
		timeProvider:       &RealTimeProvider{},
		logger:             logger,
	}
}

// Execute выполняет use case получения свободных слотов
// Ошибка чтения занятости не пробрасывается: отдается шаблон дня без фильтра занятости (fail-open)
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil || req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	uc.logger.Info("GetAvailableSlots: date=%s", req.Date)

	// 1. "Сейчас" и "сегодня" считаются в часовом поясе заведения
	now := uc.timeProvider.Now().In(uc.location)
	today := domain.DateOf(now)

	// 2. Прошедшие даты бронировать нельзя
	if req.Date.Before(today) {
		uc.logger.Info("GetAvailableSlots: date=%s is in the past", req.Date)
		return emptyResponse(req.Date), nil
	}

	// 3. Ограничение на горизонт бронирования
	if uc.advanceBookingDays > 0 && req.Date.After(today.AddDays(uc.advanceBookingDays)) {
		uc.logger.Warn("GetAvailableSlots: date=%s is beyond %d days", req.Date, uc.advanceBookingDays)
		return nil, fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, uc.advanceBookingDays)
	}

	// 4. Шаблон дня; выходной - календарь не запрашиваем
	template := uc.hours.SlotsForDate(req.Date)
	if len(template) == 0 {
		uc.logger.Info("GetAvailableSlots: closed on %s (%s)", req.Date, req.Date.Weekday())
		return emptyResponse(req.Date), nil
	}

	// 5. Занятые интервалы за весь день
	degraded := false
	busy, err := uc.busySource.ListBusyIntervals(ctx, req.Date.StartOfDay(uc.location), req.Date.EndOfDay(uc.location))
	if err != nil {
		if errors.Is(err, calendarClient.ErrUnavailable) {
			uc.logger.Warn("GetAvailableSlots: busy intervals unavailable for %s, serving full template: %v", req.Date, err)
		} else {
			uc.logger.Error("GetAvailableSlots: failed to read busy intervals for %s, serving full template: %v", req.Date, err)
		}
		uc.metrics.IncAvailabilityFailOpen()
		degraded = true
		// Шаблон без фильтра занятости; уже начавшиеся слоты сегодня все равно отсекаются ниже,
		// т.к. бронирование их отклонит (ErrTooLateToBook)
		busy = nil
	}

	// 6. Фильтрация по занятости и текущему времени
	slots := filterAvailable(template, req.Date, busy, uc.location, now, req.Date.Equal(today))

	uc.logger.Info("GetAvailableSlots: date=%s, %d/%d slots available, busy=%d, degraded=%t",
		req.Date, len(slots), len(template), len(busy), degraded)

	return &Response{
		Date:     req.Date,
		Slots:    slots,
		Degraded: degraded,
	}, nil
}

func emptyResponse(date domain.CalendarDate) *Response {
	return &Response{Date: date, Slots: []types.TimeString{}}
}
