package create_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInvalidName возвращается для пустого или слишком длинного имени/фамилии
	ErrInvalidName = fmt.Errorf("%w: first and last name are required", ErrInvalidInput)

	// ErrInvalidPhone возвращается, когда номер не состоит ровно из 8 цифр
	ErrInvalidPhone = fmt.Errorf("%w: phone number must be exactly 8 digits", ErrInvalidInput)

	// ErrInvalidEmail возвращается для некорректного email
	ErrInvalidEmail = fmt.Errorf("%w: invalid email address", ErrInvalidInput)

	// ErrInvalidPartySize возвращается, когда размер группы вне допустимого диапазона
	ErrInvalidPartySize = fmt.Errorf("%w: invalid group size", ErrInvalidInput)

	// ErrSpecialRequestsTooLong возвращается для слишком длинного комментария
	ErrSpecialRequestsTooLong = fmt.Errorf("%w: special requests are too long", ErrInvalidInput)

	// ErrInvalidDate возвращается для даты в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrClosed возвращается, когда заведение закрыто в указанную дату
	ErrClosed = errors.New("create_booking: closed on this date")

	// ErrInvalidTimeSlot возвращается, когда время не входит в шаблон слотов дня
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrTooLateToBook возвращается, когда слот сегодня уже начался
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrSlotConflict возвращается, когда слот занят (проверка перед созданием события)
	ErrSlotConflict = errors.New("create_booking: slot is already taken")

	// ErrCalendarPermission возвращается, когда у сервисного аккаунта нет прав на календарь
	ErrCalendarPermission = errors.New("create_booking: calendar permission denied")

	// ErrCalendarUnavailable возвращается при временной недоступности календаря
	ErrCalendarUnavailable = errors.New("create_booking: calendar temporarily unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
