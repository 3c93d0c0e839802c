package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RageRoomService/internal/domain"
	"github.com/m04kA/SMC-RageRoomService/pkg/types"
)

// BusinessHours интерфейс календаря часов работы
type BusinessHours interface {
	SlotsForDate(date domain.CalendarDate) []types.TimeString
}

// BusyIntervalSource интерфейс источника занятых интервалов (внешний календарь)
type BusyIntervalSource interface {
	ListBusyIntervals(ctx context.Context, from, to time.Time) ([]domain.BusyInterval, error)
}

// Metrics интерфейс для метрик
type Metrics interface {
	IncAvailabilityFailOpen()
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
