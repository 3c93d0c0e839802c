package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-RageRoomService/internal/domain"
	"github.com/m04kA/SMC-RageRoomService/pkg/types"
)

// filterAvailable оставляет слоты шаблона, которые не пересекаются с занятыми интервалами
// и (для сегодняшней даты) начинаются строго позже текущего момента
//
// Пересечение проверяется по полуинтервалам:
// - Слот 10:00-10:30, занято 10:15-10:45 → слот исключается
// - Слот 10:00-10:30, занято 10:30-11:00 → слот свободен (границы касаются)
func filterAvailable(
	template []types.TimeString,
	date domain.CalendarDate,
	busy []domain.BusyInterval,
	loc *time.Location,
	now time.Time,
	isToday bool,
) []types.TimeString {
	available := make([]types.TimeString, 0, len(template))

	for _, start := range template {
		slot := domain.Slot{Date: date, Start: start}

		if isToday {
			slotStart, _ := slot.Interval(loc)
			if !slotStart.After(now) {
				continue
			}
		}

		if _, conflict := slot.FindConflict(busy, loc); conflict {
			continue
		}

		available = append(available, start)
	}

	return available
}
