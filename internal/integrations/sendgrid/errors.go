package sendgrid

import "errors"

var (
	// ErrSendFailed возвращается, когда запрос к SendGrid не выполнен (сеть, таймаут)
	ErrSendFailed = errors.New("sendgrid: failed to send email")

	// ErrRejected возвращается, когда SendGrid ответил не 2xx
	ErrRejected = errors.New("sendgrid: email rejected")

	// ErrInvalidRecipient возвращается, когда у письма нет адресата
	ErrInvalidRecipient = errors.New("sendgrid: recipient is empty")
)
