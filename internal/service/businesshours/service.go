package businesshours

import (
	"time"

	"github.com/m04kA/SMC-RageRoomService/internal/domain"
	"github.com/m04kA/SMC-RageRoomService/pkg/types"
)

// Service календарь часов работы: по дню недели строит шаблон слотов
// Чистая функция от неизменяемой таблицы WeeklySchedule, состояния не хранит
type Service struct {
	schedule domain.WeeklySchedule
}

// NewService создает сервис поверх таблицы часов работы
func NewService(schedule domain.WeeklySchedule) *Service {
	return &Service{schedule: schedule}
}

// SlotsForWeekday возвращает времена начала слотов для дня недели (0 = воскресенье)
// Слоты идут с шагом 30 минут от Open до Close включительно
// Выходной день или значение вне 0-6 дают пустой список
func (s *Service) SlotsForWeekday(weekday int) []types.TimeString {
	hours, ok := s.schedule.HoursFor(weekday)
	if !ok {
		return []types.TimeString{}
	}

	slots := make([]types.TimeString, 0, (hours.Close.Minutes()-hours.Open.Minutes())/domain.SlotDurationMinutes+1)
	current := hours.Open
	for !current.IsAfter(hours.Close) {
		slots = append(slots, current)

		next, err := current.AddMinutes(domain.SlotDurationMinutes)
		if err != nil {
			// 23:30 - последний возможный старт в сутках
			break
		}
		current = next
	}

	return slots
}

// SlotsForDate возвращает шаблон слотов для дня недели указанной даты
func (s *Service) SlotsForDate(date domain.CalendarDate) []types.TimeString {
	return s.SlotsForWeekday(int(date.Weekday()))
}

// IsBookable проверяет, что время входит в шаблон слотов даты
func (s *Service) IsBookable(date domain.CalendarDate, start types.TimeString) bool {
	for _, slot := range s.SlotsForDate(date) {
		if slot == start {
			return true
		}
	}
	return false
}

// Hours возвращает окно работы для дня недели
func (s *Service) Hours(weekday time.Weekday) (domain.DayHours, bool) {
	return s.schedule.HoursFor(int(weekday))
}
