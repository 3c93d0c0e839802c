package notifier

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-RageRoomService/internal/domain"
	"github.com/m04kA/SMC-RageRoomService/pkg/metrics"
)

const defaultTimeout = 15 * time.Second

// Channel канал доставки подтверждения (email, sms)
type Channel interface {
	SendBookingConfirmation(ctx context.Context, r domain.Reservation) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics интерфейс для метрик уведомлений
type Metrics interface {
	IncNotification(channel, result string)
}

type namedChannel struct {
	name    string
	channel Channel
}

// Notifier рассылает подтверждения бронирования в фоне
// Ошибки доставки логируются и не влияют на результат бронирования
type Notifier struct {
	channels []namedChannel
	timeout  time.Duration
	metrics  Metrics
	logger   Logger
	wg       sync.WaitGroup
}

// New создает notifier без каналов
func New(timeout time.Duration, m Metrics, logger Logger) *Notifier {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if m == nil {
		m = (*metrics.Metrics)(nil)
	}
	return &Notifier{timeout: timeout, metrics: m, logger: logger}
}

// Register добавляет канал доставки; вызывается только при сборке зависимостей
func (n *Notifier) Register(name string, ch Channel) {
	n.channels = append(n.channels, namedChannel{name: name, channel: ch})
}

// Channels возвращает имена подключенных каналов
func (n *Notifier) Channels() []string {
	names := make([]string, 0, len(n.channels))
	for _, c := range n.channels {
		names = append(names, c.name)
	}
	return names
}

// NotifyBooking запускает доставку подтверждения по всем каналам и сразу возвращает управление
func (n *Notifier) NotifyBooking(ctx context.Context, r domain.Reservation) {
	if len(n.channels) == 0 {
		return
	}

	// Запрос уже завершится к моменту отправки, значения контекста сохраняем, отмену нет
	base := context.WithoutCancel(ctx)

	for _, c := range n.channels {
		n.wg.Add(1)
		go func(c namedChannel) {
			defer n.wg.Done()

			sendCtx, cancel := context.WithTimeout(base, n.timeout)
			defer cancel()

			if err := c.channel.SendBookingConfirmation(sendCtx, r); err != nil {
				n.logger.Warn("Notifier: %s confirmation for event id=%s failed: %v", c.name, r.EventID, err)
				n.metrics.IncNotification(c.name, metrics.ResultError)
				return
			}

			n.logger.Info("Notifier: %s confirmation for event id=%s delivered", c.name, r.EventID)
			n.metrics.IncNotification(c.name, metrics.ResultSuccess)
		}(c)
	}
}

// Wait дожидается завершения всех запущенных отправок (graceful shutdown)
func (n *Notifier) Wait() {
	n.wg.Wait()
}
