package twilio

import (
	"context"
	"fmt"
	"strings"

	twilioapi "github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/m04kA/SMC-RageRoomService/internal/domain"
)

// MessageCreator интерфейс Messages API (реализуется *openapi.ApiService)
type MessageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Options параметры SMS-отправителя
type Options struct {
	FromNumber   string // Номер Twilio в формате E.164
	CountryCode  string // Префикс для локальных 8-значных номеров, например "+216"
	BusinessName string
}

// Client отправка SMS-подтверждений через Twilio
type Client struct {
	api    MessageCreator
	opts   Options
	logger Logger
}

// NewClient создает клиент с учетными данными аккаунта Twilio
func NewClient(accountSID, authToken string, opts Options, logger Logger) *Client {
	rest := twilioapi.NewRestClientWithParams(twilioapi.ClientParams{
		Username:   accountSID,
		Password:   authToken,
		AccountSid: accountSID,
	})
	return NewClientWithAPI(rest.Api, opts, logger)
}

// NewClientWithAPI создает клиент поверх произвольной реализации Messages API
func NewClientWithAPI(api MessageCreator, opts Options, logger Logger) *Client {
	if opts.BusinessName == "" {
		opts.BusinessName = domain.DefaultBusinessName
	}
	return &Client{api: api, opts: opts, logger: logger}
}

// SendBookingConfirmation отправляет клиенту SMS с деталями бронирования
// SDK Twilio не принимает context, поэтому отмена ctx проверяется только до вызова
func (c *Client) SendBookingConfirmation(ctx context.Context, r domain.Reservation) error {
	to := c.recipient(r.Customer.Phone)
	if to == "" {
		return ErrInvalidRecipient
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	body := fmt.Sprintf("%s: your session for %s on %s at %s is confirmed. See you soon!",
		c.opts.BusinessName,
		domain.PartyLabel(r.PartySize),
		r.StartTime.Format("Mon 02/01"),
		r.StartTime.Format(domain.TimeFormat),
	)

	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(c.opts.FromNumber)
	params.SetBody(body)

	resp, err := c.api.CreateMessage(params)
	if err != nil {
		c.logger.Error("Twilio: failed to send SMS to %s: %v", to, err)
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	sid := ""
	if resp != nil && resp.Sid != nil {
		sid = *resp.Sid
	}
	c.logger.Info("Twilio: SMS sent to %s, sid=%s", to, sid)

	return nil
}

// recipient приводит номер клиента к E.164: пробелы убираются,
// номер без "+" дополняется кодом страны
func (c *Client) recipient(phone string) string {
	digits := strings.ReplaceAll(strings.TrimSpace(phone), " ", "")
	if digits == "" {
		return ""
	}
	if strings.HasPrefix(digits, "+") {
		return digits
	}
	return c.opts.CountryCode + digits
}
