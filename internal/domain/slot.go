package domain

import (
	"time"

	"github.com/m04kA/SMC-RageRoomService/pkg/types"
)

// Slot бронируемый интервал фиксированной длительности, заданный датой и временем начала
type Slot struct {
	Date  CalendarDate
	Start types.TimeString
}

// Interval возвращает полуинтервал [start, end) слота в часовом поясе loc
// Начало и конец строятся из компонентов даты, а не из строк
func (s Slot) Interval(loc *time.Location) (time.Time, time.Time) {
	start := s.Date.At(s.Start, loc)
	return start, start.Add(SlotDuration)
}

// BusyInterval занятый интервал [Start, End) из внешнего календаря
type BusyInterval struct {
	Start time.Time
	End   time.Time
	Label string // Название события, используется только для логов
}

// Overlaps проверяет пересечение полуинтервалов [aStart, aEnd) и [bStart, bEnd)
// Касание границ пересечением не считается
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// FindConflict возвращает первый занятый интервал, пересекающийся со слотом
func (s Slot) FindConflict(busy []BusyInterval, loc *time.Location) (BusyInterval, bool) {
	start, end := s.Interval(loc)
	for _, b := range busy {
		if Overlaps(start, end, b.Start, b.End) {
			return b, true
		}
	}
	return BusyInterval{}, false
}
