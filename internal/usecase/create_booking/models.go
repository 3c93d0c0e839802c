package create_booking

import (
	"time"

	"github.com/m04kA/SMC-RageRoomService/internal/domain"
	"github.com/m04kA/SMC-RageRoomService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	Date            domain.CalendarDate // Дата в часовом поясе заведения
	StartTime       types.TimeString    // Время начала слота (например, "14:00")
	PartySize       int                 // Размер группы
	FirstName       string
	LastName        string
	Phone           string // 8 цифр, пробелы допускаются
	Email           string
	SpecialRequests string // Опционально
}

// Response модель ответа с созданным бронированием
type Response struct {
	EventID   string              // ID события во внешнем календаре
	EventLink string              // Ссылка на событие
	Date      domain.CalendarDate // Дата бронирования
	StartTime types.TimeString    // Время начала слота
	PartySize int
	Start     time.Time // Начало в часовом поясе заведения
	End       time.Time // Конец в часовом поясе заведения
}

// Исходы бронирования для метрик
const (
	outcomeCreated  = "created"
	outcomeConflict = "conflict"
	outcomeRejected = "rejected"
	outcomeFailed   = "failed"
)

// Options бизнес-параметры бронирования
type Options struct {
	Location           *time.Location
	MaxPartySize       int           // 0 = domain.DefaultMaxPartySize
	AdvanceBookingDays int           // 0 = без ограничений
	LockTTL            time.Duration // Время удержания блокировки слота
}
