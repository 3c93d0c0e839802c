package send_contact_message

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-RageRoomService/internal/domain"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UseCase use case пересылки сообщения формы обратной связи владельцу
type UseCase struct {
	mailer Mailer
	logger Logger
}

// NewUseCase создает новый экземпляр use case; mailer = nil означает, что почта не настроена
func NewUseCase(mailer Mailer, logger Logger) *UseCase {
	return &UseCase{mailer: mailer, logger: logger}
}

// Execute валидирует и отправляет сообщение
func (uc *UseCase) Execute(ctx context.Context, req *Request) error {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SendContactMessage: validation failed: %v", err)
		return err
	}

	if uc.mailer == nil {
		uc.logger.Error("SendContactMessage: mailer is not configured, message from %s dropped", req.Email)
		return ErrNotConfigured
	}

	msg := domain.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	}

	if err := uc.mailer.SendContactMessage(ctx, msg); err != nil {
		uc.logger.Error("SendContactMessage: failed to send message from %s: %v", req.Email, err)
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	uc.logger.Info("SendContactMessage: message from %s forwarded", req.Email)
	return nil
}

func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Message = strings.TrimSpace(req.Message)

	if req.Name == "" || req.Email == "" || req.Message == "" {
		return fmt.Errorf("%w: name, email and message are required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(req.Name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}
	if !emailPattern.MatchString(req.Email) {
		return fmt.Errorf("%w: invalid email address", ErrInvalidInput)
	}
	if utf8.RuneCountInString(req.Message) > domain.MaxContactMessageLength {
		return fmt.Errorf("%w: message is too long", ErrInvalidInput)
	}

	return nil
}
