package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RageRoomService/internal/domain"
	"github.com/m04kA/SMC-RageRoomService/internal/infra/slotlock"
	"github.com/m04kA/SMC-RageRoomService/internal/integrations/googlecalendar"
	"github.com/m04kA/SMC-RageRoomService/pkg/types"
)

// BusinessHours интерфейс календаря часов работы
type BusinessHours interface {
	SlotsForDate(date domain.CalendarDate) []types.TimeString
	IsBookable(date domain.CalendarDate, start types.TimeString) bool
}

// Calendar интерфейс внешнего календаря: источник занятости и приемник событий
type Calendar interface {
	ListBusyIntervals(ctx context.Context, from, to time.Time) ([]domain.BusyInterval, error)
	CreateEvent(ctx context.Context, req domain.BookingRequest) (*googlecalendar.Event, error)
}

// SlotLocker интерфейс блокировки слота между параллельными запросами
type SlotLocker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (slotlock.ReleaseFunc, error)
}

// Notifier интерфейс рассылки подтверждений
type Notifier interface {
	NotifyBooking(ctx context.Context, r domain.Reservation)
}

// Metrics интерфейс для метрик
type Metrics interface {
	IncSlotConflict()
	IncBooking(outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
