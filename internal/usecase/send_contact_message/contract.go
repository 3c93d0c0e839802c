package send_contact_message

import (
	"context"

	"github.com/m04kA/SMC-RageRoomService/internal/domain"
)

// Mailer интерфейс отправки писем
type Mailer interface {
	SendContactMessage(ctx context.Context, msg domain.ContactMessage) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
