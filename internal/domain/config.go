package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-RageRoomService/pkg/types"
)

// DayHours окно работы на день недели
// Close - время начала последнего слота дня, а не время окончания сеанса:
// при Close = 22:00 слот 22:00 бронируется и заканчивается в 22:30
type DayHours struct {
	Open  types.TimeString
	Close types.TimeString
}

// WeeklySchedule неизменяемая таблица часов работы: день недели -> окно работы
// Отсутствующий день недели означает "закрыто"
type WeeklySchedule struct {
	days map[time.Weekday]DayHours
}

// NewWeeklySchedule создает расписание и проверяет каждое окно
func NewWeeklySchedule(days map[time.Weekday]DayHours) (WeeklySchedule, error) {
	copied := make(map[time.Weekday]DayHours, len(days))

	for weekday, hours := range days {
		if weekday < time.Sunday || weekday > time.Saturday {
			return WeeklySchedule{}, fmt.Errorf("%w: weekday %d", ErrInvalidSchedule, weekday)
		}
		if err := hours.Validate(); err != nil {
			return WeeklySchedule{}, fmt.Errorf("%s: %w", weekday, err)
		}
		copied[weekday] = hours
	}

	return WeeklySchedule{days: copied}, nil
}

// DefaultWeeklySchedule стандартное расписание зала:
// Сб-Вс 10:00-22:00, Вт-Пт 11:00-22:00, Пн выходной
func DefaultWeeklySchedule() WeeklySchedule {
	weekend := DayHours{Open: "10:00", Close: "22:00"}
	weekday := DayHours{Open: "11:00", Close: "22:00"}

	return WeeklySchedule{days: map[time.Weekday]DayHours{
		time.Sunday:    weekend,
		time.Tuesday:   weekday,
		time.Wednesday: weekday,
		time.Thursday:  weekday,
		time.Friday:    weekday,
		time.Saturday:  weekend,
	}}
}

// HoursFor возвращает окно работы для дня недели (0 = воскресенье)
// Для значений вне 0-6 и для выходных возвращает false
func (s WeeklySchedule) HoursFor(weekday int) (DayHours, bool) {
	if weekday < int(time.Sunday) || weekday > int(time.Saturday) {
		return DayHours{}, false
	}
	hours, ok := s.days[time.Weekday(weekday)]
	return hours, ok
}

// Validate проверяет окно работы: оба времени на сетке слотов и Open <= Close
func (h DayHours) Validate() error {
	if !IsOnSlotGrid(h.Open) {
		return fmt.Errorf("%w: open time %q is not on the %d-minute grid", ErrInvalidSchedule, h.Open, SlotDurationMinutes)
	}
	if !IsOnSlotGrid(h.Close) {
		return fmt.Errorf("%w: close time %q is not on the %d-minute grid", ErrInvalidSchedule, h.Close, SlotDurationMinutes)
	}
	if h.Close.IsBefore(h.Open) {
		return fmt.Errorf("%w: close %s is before open %s", ErrInvalidSchedule, h.Close, h.Open)
	}
	return nil
}

// IsOnSlotGrid проверяет, что время корректно и минуты кратны длительности слота (0 или 30)
func IsOnSlotGrid(t types.TimeString) bool {
	if t.Validate() != nil {
		return false
	}
	return t.Minute()%SlotDurationMinutes == 0
}
