package send_contact_message

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("send_contact_message: invalid input data")

	// ErrNotConfigured возвращается, когда отправка почты не настроена
	ErrNotConfigured = errors.New("send_contact_message: mailer is not configured")

	// ErrDeliveryFailed возвращается, когда письмо не удалось отправить
	ErrDeliveryFailed = errors.New("send_contact_message: failed to deliver message")
)
