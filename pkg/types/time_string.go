package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidFormat возвращается, если строка не соответствует формату HH:MM
	ErrInvalidFormat = errors.New("invalid time string format")

	// ErrOutOfRange возвращается, если часы или минуты вне допустимого диапазона
	ErrOutOfRange = errors.New("time string out of range")

	// ErrDayOverflow возвращается, если сложение выходит за пределы суток
	ErrDayOverflow = errors.New("time string overflows the day")
)

const minutesPerDay = 24 * 60

// TimeString время суток в формате HH:MM (24 часа)
// Пустое значение означает "время не задано"
type TimeString string

// NewTimeString создает TimeString из часов и минут time.Time (секунды отбрасываются)
func NewTimeString(t time.Time) TimeString {
	return fromMinutes(t.Hour()*60 + t.Minute())
}

// NewTimeStringFromParts создает TimeString из часов и минут
func NewTimeStringFromParts(hour, minute int) (TimeString, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return "", fmt.Errorf("%w: %02d:%02d", ErrOutOfRange, hour, minute)
	}
	return fromMinutes(hour*60 + minute), nil
}

// NewTimeStringFromString парсит строку HH:MM
// Строка разбирается на целые компоненты напрямую, без участия time.Parse и часовых поясов
func NewTimeStringFromString(s string) (TimeString, error) {
	hour, minute, err := split(s)
	if err != nil {
		return "", err
	}
	return NewTimeStringFromParts(hour, minute)
}

// MustTimeString как NewTimeStringFromString, но паникует при ошибке (для констант и тестов)
func MustTimeString(s string) TimeString {
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return ts
}

func split(s string) (int, int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 || !isDigits(parts[0]) || !isDigits(parts[1]) {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	return hour, minute, nil
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

func fromMinutes(total int) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60))
}

// IsZero проверяет, что время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет формат и диапазон значения
func (t TimeString) Validate() error {
	_, err := NewTimeStringFromString(string(t))
	return err
}

// Hour возвращает часы (0 для некорректного значения)
func (t TimeString) Hour() int {
	return t.Minutes() / 60
}

// Minute возвращает минуты (0 для некорректного значения)
func (t TimeString) Minute() int {
	return t.Minutes() % 60
}

// Minutes возвращает количество минут от полуночи
func (t TimeString) Minutes() int {
	hour, minute, err := split(string(t))
	if err != nil {
		return 0
	}
	return hour*60 + minute
}

// AddMinutes прибавляет минуты; результат должен остаться в пределах тех же суток
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	total := t.Minutes() + minutes
	if total < 0 || total >= minutesPerDay {
		return "", fmt.Errorf("%w: %s%+d min", ErrDayOverflow, t, minutes)
	}
	return fromMinutes(total), nil
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// String возвращает HH:MM
func (t TimeString) String() string {
	return string(t)
}
