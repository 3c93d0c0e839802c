package send_contact_message

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RageRoomService/internal/domain"
	sendContactMessage "github.com/m04kA/SMC-RageRoomService/internal/usecase/send_contact_message"
	"github.com/m04kA/SMC-RageRoomService/pkg/logger"
)

type fakeMailer struct {
	sent []domain.ContactMessage
	err  error
}

func (f *fakeMailer) SendContactMessage(_ context.Context, msg domain.ContactMessage) error {
	f.sent = append(f.sent, msg)
	return f.err
}

type fakeUseCase struct {
	err error
}

func (f *fakeUseCase) Execute(context.Context, *sendContactMessage.Request) error {
	return f.err
}

func serve(uc SendContactMessageUseCase, body string) *httptest.ResponseRecorder {
	h := NewHandler(uc, logger.NewWithWriter(io.Discard, "debug"))
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body)))
	return rec
}

func TestHandle_Success(t *testing.T) {
	mailer := &fakeMailer{}
	uc := sendContactMessage.NewUseCase(mailer, logger.NewWithWriter(io.Discard, "debug"))

	rec := serve(uc, `{"name": " Sami ", "email": "sami@example.com", "phone": "12345678", "message": "Do you host team events?"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success": true, "message": "Message sent successfully"}`, rec.Body.String())
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "Sami", mailer.sent[0].Name)
	assert.Equal(t, "12345678", mailer.sent[0].Phone)
}

func TestHandle_MissingFields(t *testing.T) {
	rec := serve(&fakeUseCase{}, `{"name": "Sami", "message": "   "}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error": "Missing required fields", "required": ["name", "email", "message"]}`, rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "invalid json",
			body:       `not json`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error": "Invalid request body"}`,
		},
		{
			name:       "invalid email",
			err:        fmt.Errorf("%w: invalid email", sendContactMessage.ErrInvalidInput),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error": "Invalid contact form data"}`,
		},
		{
			name:       "mailer not configured",
			err:        sendContactMessage.ErrNotConfigured,
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error": "Failed to send message", "message": "` + msgTryLater + `"}`,
		},
		{
			name:       "delivery failed",
			err:        fmt.Errorf("%w: status 401", sendContactMessage.ErrDeliveryFailed),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error": "Failed to send message", "message": "` + msgTryLater + `"}`,
		},
		{
			name:       "unexpected",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error": "internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := tt.body
			if body == "" {
				body = `{"name": "Sami", "email": "sami@example.com", "message": "Hi"}`
			}

			rec := serve(&fakeUseCase{err: tt.err}, body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
