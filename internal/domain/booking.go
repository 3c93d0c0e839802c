package domain

import (
	"strconv"
	"strings"
	"time"
)

// Customer данные клиента; ядро бронирования передает их в календарь без интерпретации
type Customer struct {
	FirstName       string
	LastName        string
	Phone           string
	Email           string
	SpecialRequests string
}

// FullName возвращает "Имя Фамилия"
func (c Customer) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName))
}

// BookingRequest запрос на бронирование слота
type BookingRequest struct {
	Slot      Slot
	PartySize int
	Customer  Customer
}

// Reservation подтвержденное бронирование (событие создано во внешнем календаре)
type Reservation struct {
	EventID   string
	EventLink string
	Slot      Slot
	PartySize int
	Customer  Customer
	StartTime time.Time
	EndTime   time.Time
}

// PartyLabel возвращает "1 person" / "N people"
func PartyLabel(size int) string {
	if size == 1 {
		return "1 person"
	}
	return strconv.Itoa(size) + " people"
}
