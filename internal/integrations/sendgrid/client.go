package sendgrid

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/sendgrid/rest"
	sg "github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/m04kA/SMC-RageRoomService/internal/domain"
)

// Sender интерфейс транспорта SendGrid (реализуется *sendgrid.Client)
type Sender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client отправка писем через SendGrid
type Client struct {
	sender Sender
	opts   Options
	logger Logger
}

// NewClient создает клиент с API-ключом SendGrid
func NewClient(apiKey string, opts Options, logger Logger) *Client {
	return NewClientWithSender(sg.NewSendClient(apiKey), opts, logger)
}

// NewClientWithSender создает клиент поверх произвольного транспорта
func NewClientWithSender(sender Sender, opts Options, logger Logger) *Client {
	if opts.BusinessName == "" {
		opts.BusinessName = domain.DefaultBusinessName
	}
	if opts.FromName == "" {
		opts.FromName = opts.BusinessName
	}
	return &Client{sender: sender, opts: opts, logger: logger}
}

// SendContactMessage пересылает сообщение формы обратной связи владельцу
// Reply-To выставляется на адрес клиента, чтобы ответить можно было прямо из почты
func (c *Client) SendContactMessage(ctx context.Context, msg domain.ContactMessage) error {
	if c.opts.ContactTo == "" {
		return fmt.Errorf("%w: contact inbox is not configured", ErrInvalidRecipient)
	}

	phone := msg.Phone
	if phone == "" {
		phone = "Not provided"
	}

	subject := fmt.Sprintf("New website inquiry from %s", msg.Name)
	plain := fmt.Sprintf("New message received via website contact form:\n\nName: %s\nEmail: %s\nPhone: %s\n\nMessage:\n%s",
		msg.Name, msg.Email, phone, msg.Message)
	htmlBody := fmt.Sprintf(
		"<p>New message received via website contact form:</p>"+
			"<p><strong>Name:</strong> %s</p>"+
			"<p><strong>Email:</strong> %s</p>"+
			"<p><strong>Phone:</strong> %s</p>"+
			"<h3>Message:</h3><p>%s</p>",
		html.EscapeString(msg.Name),
		html.EscapeString(msg.Email),
		html.EscapeString(phone),
		strings.ReplaceAll(html.EscapeString(msg.Message), "\n", "<br>"),
	)

	message := mail.NewSingleEmail(
		mail.NewEmail(c.opts.FromName, c.opts.FromEmail),
		subject,
		mail.NewEmail(c.opts.BusinessName, c.opts.ContactTo),
		plain,
		htmlBody,
	)
	message.SetReplyTo(mail.NewEmail(msg.Name, msg.Email))

	return c.send(ctx, message, c.opts.ContactTo)
}

// SendBookingConfirmation отправляет клиенту подтверждение бронирования
func (c *Client) SendBookingConfirmation(ctx context.Context, r domain.Reservation) error {
	if r.Customer.Email == "" {
		return fmt.Errorf("%w: customer has no email", ErrInvalidRecipient)
	}

	date := r.StartTime.Format("Monday, January 2, 2006")
	timeSlot := r.StartTime.Format(domain.TimeFormat) + " - " + r.EndTime.Format(domain.TimeFormat)
	party := domain.PartyLabel(r.PartySize)

	subject := fmt.Sprintf("Booking Confirmed - %s", c.opts.BusinessName)
	plain := fmt.Sprintf("Hi %s,\n\nYour %s session is confirmed.\n\nDate: %s\nTime: %s\nGroup Size: %s\n\nSee you soon!",
		r.Customer.FirstName, c.opts.BusinessName, date, timeSlot, party)
	htmlBody := fmt.Sprintf(
		"<h2>Booking Confirmed!</h2>"+
			"<p>Hi %s,</p>"+
			"<p>Your %s session is confirmed.</p>"+
			"<p><strong>Date:</strong> %s<br><strong>Time:</strong> %s<br><strong>Group Size:</strong> %s</p>"+
			"<p>See you soon!</p>",
		html.EscapeString(r.Customer.FirstName),
		html.EscapeString(c.opts.BusinessName),
		date, timeSlot, party,
	)

	message := mail.NewSingleEmail(
		mail.NewEmail(c.opts.FromName, c.opts.FromEmail),
		subject,
		mail.NewEmail(r.Customer.FullName(), r.Customer.Email),
		plain,
		htmlBody,
	)

	return c.send(ctx, message, r.Customer.Email)
}

func (c *Client) send(ctx context.Context, message *mail.SGMailV3, to string) error {
	resp, err := c.sender.SendWithContext(ctx, message)
	if err != nil {
		c.logger.Error("SendGrid: failed to send email to %s: %v", to, err)
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("SendGrid: email to %s rejected with status %d: %s", to, resp.StatusCode, resp.Body)
		return fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode)
	}

	c.logger.Info("SendGrid: email sent to %s, status=%d", to, resp.StatusCode)
	return nil
}
