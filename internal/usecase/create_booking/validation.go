package create_booking

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-RageRoomService/internal/domain"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9]+$`)
)

// validateRequest валидирует и нормализует входные данные запроса
func validateRequest(req *Request, maxPartySize int) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: time slot is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time slot format: %v", ErrInvalidInput, err)
	}

	// Слоты начинаются только в :00 и :30
	if !domain.IsOnSlotGrid(req.StartTime) {
		return fmt.Errorf("%w: %s is not on the %d-minute grid", ErrInvalidTimeSlot, req.StartTime, domain.SlotDurationMinutes)
	}

	if req.PartySize < domain.MinPartySize || req.PartySize > maxPartySize {
		return fmt.Errorf("%w: must be between %d and %d", ErrInvalidPartySize, domain.MinPartySize, maxPartySize)
	}

	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	if req.FirstName == "" || req.LastName == "" {
		return ErrInvalidName
	}
	if utf8.RuneCountInString(req.FirstName) > domain.MaxNameLength || utf8.RuneCountInString(req.LastName) > domain.MaxNameLength {
		return fmt.Errorf("%w: at most %d characters", ErrInvalidName, domain.MaxNameLength)
	}

	phone := normalizePhone(req.Phone)
	if len(phone) != domain.PhoneDigits || !phonePattern.MatchString(phone) {
		return ErrInvalidPhone
	}
	req.Phone = phone

	req.Email = strings.TrimSpace(req.Email)
	if !emailPattern.MatchString(req.Email) {
		return ErrInvalidEmail
	}

	req.SpecialRequests = strings.TrimSpace(req.SpecialRequests)
	if utf8.RuneCountInString(req.SpecialRequests) > domain.MaxSpecialRequestsLength {
		return fmt.Errorf("%w: at most %d characters", ErrSpecialRequestsTooLong, domain.MaxSpecialRequestsLength)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом и не дальше горизонта бронирования
func validateDate(date, today domain.CalendarDate, advanceBookingDays int) error {
	if date.Before(today) {
		return ErrInvalidDate
	}

	// Если advanceBookingDays = 0, нет ограничений на дату
	if advanceBookingDays == 0 {
		return nil
	}

	if date.After(today.AddDays(advanceBookingDays)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// normalizePhone убирает пробелы: "12 345 678" → "12345678"
func normalizePhone(phone string) string {
	return strings.Join(strings.Fields(phone), "")
}
