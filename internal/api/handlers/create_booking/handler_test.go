package create_booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RageRoomService/internal/api/handlers"
	"github.com/m04kA/SMC-RageRoomService/internal/domain"
	createBooking "github.com/m04kA/SMC-RageRoomService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-RageRoomService/pkg/logger"
	"github.com/m04kA/SMC-RageRoomService/pkg/types"
)

type fakeUseCase struct {
	resp *createBooking.Response
	err  error
	got  *createBooking.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.got = req
	return f.resp, f.err
}

const validBody = `{
	"date": "2026-10-17",
	"timeSlot": "14:00",
	"groupSize": 3,
	"firstName": "Lina",
	"lastName": "Ben Salah",
	"phoneNumber": "12 345 678",
	"email": "lina@example.com",
	"specialRequests": "Birthday"
}`

func serve(t *testing.T, uc CreateBookingUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(uc, logger.NewWithWriter(io.Discard, "debug"))
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/book", strings.NewReader(body)))
	return rec
}

func TestHandle_Success(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	start := time.Date(2026, 10, 17, 14, 0, 0, 0, loc)
	uc := &fakeUseCase{resp: &createBooking.Response{
		EventID:   "evt-1",
		EventLink: "https://calendar.example/evt-1",
		Date:      domain.CalendarDate{Year: 2026, Month: time.October, Day: 17},
		StartTime: "14:00",
		PartySize: 3,
		Start:     start,
		End:       start.Add(30 * time.Minute),
	}}

	rec := serve(t, uc, validBody)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"success": true,
		"message": "Booking created successfully.",
		"booking": {
			"id": "evt-1",
			"date": "2026-10-17",
			"timeSlot": "14:00",
			"groupSize": 3,
			"eventLink": "https://calendar.example/evt-1",
			"startTime": "2026-10-17T14:00:00+02:00",
			"endTime": "2026-10-17T14:30:00+02:00"
		}
	}`, rec.Body.String())

	require.NotNil(t, uc.got)
	assert.Equal(t, domain.CalendarDate{Year: 2026, Month: time.October, Day: 17}, uc.got.Date)
	assert.Equal(t, types.TimeString("14:00"), uc.got.StartTime)
	assert.Equal(t, 3, uc.got.PartySize)
	assert.Equal(t, "12 345 678", uc.got.Phone)
}

func TestHandle_GroupSizeAsString(t *testing.T) {
	uc := &fakeUseCase{err: errors.New("stop")}
	serve(t, uc, strings.Replace(validBody, `"groupSize": 3`, `"groupSize": "4"`, 1))

	require.NotNil(t, uc.got)
	assert.Equal(t, 4, uc.got.PartySize)
}

func TestHandle_RequestErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{name: "not json", body: `{`, wantMsg: msgInvalidRequestBody},
		{name: "missing email", body: strings.Replace(validBody, `"lina@example.com"`, `""`, 1), wantMsg: msgMissingFields},
		{name: "zero group", body: strings.Replace(validBody, `"groupSize": 3`, `"groupSize": 0`, 1), wantMsg: msgMissingFields},
		{name: "bad date", body: strings.Replace(validBody, `"2026-10-17"`, `"17/10/2026"`, 1), wantMsg: msgInvalidDate},
		{name: "bad time", body: strings.Replace(validBody, `"14:00"`, `"2pm"`, 1), wantMsg: msgInvalidTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{}
			rec := serve(t, uc, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantMsg)
			assert.Nil(t, uc.got)
		})
	}
}

func TestHandle_MissingFieldsListsRequired(t *testing.T) {
	rec := serve(t, &fakeUseCase{}, `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body MissingFieldsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, msgMissingFields, body.Error)
	assert.Equal(t, requiredFields, body.Required)
}

func TestHandle_UseCaseErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   handlers.ErrorResponse
	}{
		{name: "email", err: createBooking.ErrInvalidEmail, wantStatus: http.StatusBadRequest, wantBody: handlers.ErrorResponse{Error: msgInvalidEmail}},
		{name: "phone", err: createBooking.ErrInvalidPhone, wantStatus: http.StatusBadRequest, wantBody: handlers.ErrorResponse{Error: msgInvalidPhone}},
		{name: "group", err: fmt.Errorf("%w: must be between 1 and 5", createBooking.ErrInvalidPartySize), wantStatus: http.StatusBadRequest, wantBody: handlers.ErrorResponse{Error: msgInvalidGroupSize}},
		{name: "past", err: createBooking.ErrInvalidDate, wantStatus: http.StatusBadRequest, wantBody: handlers.ErrorResponse{Error: msgPastDate}},
		{name: "closed", err: createBooking.ErrClosed, wantStatus: http.StatusBadRequest, wantBody: handlers.ErrorResponse{Error: msgClosed}},
		{name: "outside hours", err: createBooking.ErrInvalidTimeSlot, wantStatus: http.StatusBadRequest, wantBody: handlers.ErrorResponse{Error: msgInvalidTimeSlot}},
		{name: "started", err: createBooking.ErrTooLateToBook, wantStatus: http.StatusBadRequest, wantBody: handlers.ErrorResponse{Error: msgTooLateToBook}},
		{
			name:       "conflict",
			err:        createBooking.ErrSlotConflict,
			wantStatus: http.StatusConflict,
			wantBody:   handlers.ErrorResponse{Error: msgBookingFailed, Message: msgSlotTaken},
		},
		{
			name:       "permission",
			err:        fmt.Errorf("%w: status 403: You need to have writer access", createBooking.ErrCalendarPermission),
			wantStatus: http.StatusForbidden,
			wantBody:   handlers.ErrorResponse{Error: msgBookingFailed, Message: msgPermissionDenied, Details: msgPermissionDetails},
		},
		{
			name:       "unavailable",
			err:        createBooking.ErrCalendarUnavailable,
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   handlers.ErrorResponse{Error: msgBookingFailed, Message: msgCalendarUnavailable},
		},
		{
			name:       "internal",
			err:        fmt.Errorf("%w: secret upstream body", createBooking.ErrInternal),
			wantStatus: http.StatusInternalServerError,
			wantBody:   handlers.ErrorResponse{Error: "internal server error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, &fakeUseCase{err: tt.err}, validBody)
			require.Equal(t, tt.wantStatus, rec.Code)

			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody, body)
		})
	}
}
