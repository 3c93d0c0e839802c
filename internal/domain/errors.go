package domain

import "errors"

var (
	// ErrInvalidDate возвращается для строки, не являющейся корректной датой YYYY-MM-DD
	ErrInvalidDate = errors.New("domain: invalid calendar date")

	// ErrInvalidSchedule возвращается при некорректной таблице часов работы
	ErrInvalidSchedule = errors.New("domain: invalid weekly schedule")
)
