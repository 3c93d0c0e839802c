package twilio

import "errors"

var (
	// ErrSendFailed возвращается, когда Twilio не принял сообщение
	ErrSendFailed = errors.New("twilio: failed to send sms")

	// ErrInvalidRecipient возвращается для пустого номера получателя
	ErrInvalidRecipient = errors.New("twilio: recipient phone is empty")
)
