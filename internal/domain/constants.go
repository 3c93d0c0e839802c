package domain

import "time"

// Параметры слотов
const (
	SlotDurationMinutes = 30
	SlotDuration        = SlotDurationMinutes * time.Minute
)

// Значения конфигурации по умолчанию
const (
	DefaultTimezone           = "Europe/Paris"
	DefaultBusinessName       = "Smash Room"
	DefaultMaxPartySize       = 5
	DefaultAdvanceBookingDays = 0 // 0 = без ограничений
)

// Константы бизнес-валидации
const (
	MinPartySize             = 1
	PhoneDigits              = 8
	MaxNameLength            = 100
	MaxSpecialRequestsLength = 1000
	MaxContactMessageLength  = 5000
	MaxAdvanceBookingDaysCap = 365
)

// TimeFormat формат времени суток HH:MM для time.Time
const TimeFormat = "15:04"
