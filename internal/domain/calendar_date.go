package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-RageRoomService/pkg/types"
)

// CalendarDate календарная дата без времени и часового пояса
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

// NewCalendarDate создает дату и проверяет, что она существует в григорианском календаре
func NewCalendarDate(year int, month time.Month, day int) (CalendarDate, error) {
	if year < 1 || year > 9999 || month < time.January || month > time.December || day < 1 {
		return CalendarDate{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, year, int(month), day)
	}

	// time.Date нормализует 31 февраля в 3 марта - сравниваем компоненты после нормализации
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return CalendarDate{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, year, int(month), day)
	}

	return CalendarDate{Year: year, Month: month, Day: day}, nil
}

// ParseCalendarDate разбирает строку YYYY-MM-DD на целые компоненты
// Не использует time.Parse, чтобы дата не сдвигалась из-за часового пояса
func ParseCalendarDate(s string) (CalendarDate, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 || len(parts[0]) != 4 || len(parts[1]) != 2 || len(parts[2]) != 2 {
		return CalendarDate{}, fmt.Errorf("%w: expected YYYY-MM-DD, got %q", ErrInvalidDate, s)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		if !isDigits(p) {
			return CalendarDate{}, fmt.Errorf("%w: expected YYYY-MM-DD, got %q", ErrInvalidDate, s)
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return CalendarDate{}, fmt.Errorf("%w: expected YYYY-MM-DD, got %q", ErrInvalidDate, s)
		}
		nums[i] = n
	}

	return NewCalendarDate(nums[0], time.Month(nums[1]), nums[2])
}

// isDigits только ASCII-цифры: strconv.Atoi пропускает знак "+"/"-"
func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

// DateOf возвращает календарную дату момента t в его собственном часовом поясе
// Вызывающий обязан предварительно перевести t в часовой пояс заведения
func DateOf(t time.Time) CalendarDate {
	y, m, d := t.Date()
	return CalendarDate{Year: y, Month: m, Day: d}
}

// IsZero проверяет, что дата не задана
func (d CalendarDate) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Weekday возвращает день недели (не зависит от часового пояса)
func (d CalendarDate) Weekday() time.Weekday {
	return time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.UTC).Weekday()
}

// At возвращает момент времени tod в дату d в часовом поясе loc
func (d CalendarDate) At(tod types.TimeString, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, tod.Hour(), tod.Minute(), 0, 0, loc)
}

// StartOfDay возвращает 00:00:00 даты в часовом поясе loc
func (d CalendarDate) StartOfDay(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// EndOfDay возвращает 23:59:59 даты в часовом поясе loc
func (d CalendarDate) EndOfDay(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 23, 59, 59, 0, loc)
}

// AddDays сдвигает дату на n дней
func (d CalendarDate) AddDays(n int) CalendarDate {
	return DateOf(time.Date(d.Year, d.Month, d.Day+n, 12, 0, 0, 0, time.UTC))
}

// Before возвращает true, если d строго раньше other
func (d CalendarDate) Before(other CalendarDate) bool {
	return d.ordinal() < other.ordinal()
}

// After возвращает true, если d строго позже other
func (d CalendarDate) After(other CalendarDate) bool {
	return d.ordinal() > other.ordinal()
}

// Equal проверяет совпадение дат
func (d CalendarDate) Equal(other CalendarDate) bool {
	return d == other
}

// String возвращает дату в формате YYYY-MM-DD
func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d CalendarDate) ordinal() int {
	return d.Year*10000 + int(d.Month)*100 + d.Day
}
