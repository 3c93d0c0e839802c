package create_booking

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-RageRoomService/internal/domain"
	createBooking "github.com/m04kA/SMC-RageRoomService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-RageRoomService/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid time slot")
)

// GroupSize принимает число или числовую строку ("3")
type GroupSize int

// UnmarshalJSON реализует json.Unmarshaler
func (g *GroupSize) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*g = GroupSize(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	*g = GroupSize(n)
	return nil
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Date            string    `json:"date"`     // "2026-10-17"
	TimeSlot        string    `json:"timeSlot"` // "14:00"
	GroupSize       GroupSize `json:"groupSize"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	PhoneNumber     string    `json:"phoneNumber"`
	Email           string    `json:"email"`
	SpecialRequests string    `json:"specialRequests,omitempty"`
}

// MissingFieldsResponse ответ при отсутствии обязательных полей
type MissingFieldsResponse struct {
	Error    string   `json:"error"`
	Required []string `json:"required"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Booking BookingInfo `json:"booking"`
}

// BookingInfo данные созданного бронирования
type BookingInfo struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	TimeSlot  string `json:"timeSlot"`
	GroupSize int    `json:"groupSize"`
	EventLink string `json:"eventLink"`
	StartTime string `json:"startTime"` // RFC3339 со смещением заведения
	EndTime   string `json:"endTime"`
}

var requiredFields = []string{"date", "timeSlot", "groupSize", "firstName", "lastName", "phoneNumber", "email"}

// hasRequiredFields проверяет наличие обязательных полей
func (r *CreateBookingRequest) hasRequiredFields() bool {
	return strings.TrimSpace(r.Date) != "" &&
		strings.TrimSpace(r.TimeSlot) != "" &&
		r.GroupSize != 0 &&
		strings.TrimSpace(r.FirstName) != "" &&
		strings.TrimSpace(r.LastName) != "" &&
		strings.TrimSpace(r.PhoneNumber) != "" &&
		strings.TrimSpace(r.Email) != ""
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	date, err := domain.ParseCalendarDate(strings.TrimSpace(r.Date))
	if err != nil {
		return nil, errors.Join(errInvalidDate, err)
	}

	startTime, err := types.NewTimeStringFromString(strings.TrimSpace(r.TimeSlot))
	if err != nil {
		return nil, errors.Join(errInvalidTime, err)
	}

	return &createBooking.Request{
		Date:            date,
		StartTime:       startTime,
		PartySize:       int(r.GroupSize),
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Phone:           r.PhoneNumber,
		Email:           r.Email,
		SpecialRequests: r.SpecialRequests,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		Success: true,
		Message: "Booking created successfully.",
		Booking: BookingInfo{
			ID:        resp.EventID,
			Date:      resp.Date.String(),
			TimeSlot:  resp.StartTime.String(),
			GroupSize: resp.PartySize,
			EventLink: resp.EventLink,
			StartTime: resp.Start.Format(time.RFC3339),
			EndTime:   resp.End.Format(time.RFC3339),
		},
	}
}
