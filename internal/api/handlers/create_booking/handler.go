package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RageRoomService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-RageRoomService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgMissingFields      = "Missing required fields"
	msgInvalidDate        = "Invalid date format. Use YYYY-MM-DD"
	msgInvalidTime        = "Invalid time slot format. Use HH:MM (24-hour format)"
	msgInvalidEmail       = "Invalid email format"
	msgInvalidPhone       = "Phone number must be exactly 8 digits"
	msgInvalidGroupSize   = "Invalid group size"
	msgInvalidName        = "First and last name are required"
	msgRequestsTooLong    = "Special requests are too long"
	msgInvalidInput       = "Invalid booking data"
	msgPastDate           = "Cannot book a date in the past"
	msgDateTooFar         = "Date is too far in the future"
	msgClosed             = "We are closed on this date"
	msgInvalidTimeSlot    = "This time slot is not available for booking"
	msgTooLateToBook      = "This time slot has already started"

	msgBookingFailed       = "Failed to create booking"
	msgSlotTaken           = "Sorry, this time slot was just booked. Please choose another one."
	msgPermissionDenied    = `Calendar permission denied. Please ensure the service account has "Make changes to events" permission on your Google Calendar.`
	msgPermissionDetails   = `To fix this: 1) Open Google Calendar, 2) Go to calendar settings, 3) Share with your service account email, 4) Give it "Make changes to events" permission`
	msgCalendarUnavailable = "The booking calendar is temporarily unavailable. Please try again in a moment."
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/book
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /book - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if !req.hasRequiredFields() {
		h.logger.Warn("POST /book - Missing required fields")
		handlers.RespondJSON(w, http.StatusBadRequest, MissingFieldsResponse{Error: msgMissingFields, Required: requiredFields})
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /book - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondUseCaseError(w, &req, err)
		return
	}

	h.logger.Info("POST /book - Booking created successfully: event_id=%s, date=%s, time=%s, group=%d",
		result.EventID, req.Date, req.TimeSlot, result.PartySize)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

func (h *Handler) respondUseCaseError(w http.ResponseWriter, req *CreateBookingRequest, err error) {
	switch {
	// Валидация данных клиента
	case errors.Is(err, createBooking.ErrInvalidEmail):
		h.logger.Warn("POST /book - Invalid email")
		handlers.RespondBadRequest(w, msgInvalidEmail)

	case errors.Is(err, createBooking.ErrInvalidPhone):
		h.logger.Warn("POST /book - Invalid phone number")
		handlers.RespondBadRequest(w, msgInvalidPhone)

	case errors.Is(err, createBooking.ErrInvalidPartySize):
		h.logger.Warn("POST /book - Invalid group size: %d", req.GroupSize)
		handlers.RespondBadRequest(w, msgInvalidGroupSize)

	case errors.Is(err, createBooking.ErrInvalidName):
		h.logger.Warn("POST /book - Invalid name")
		handlers.RespondBadRequest(w, msgInvalidName)

	case errors.Is(err, createBooking.ErrSpecialRequestsTooLong):
		h.logger.Warn("POST /book - Special requests too long")
		handlers.RespondBadRequest(w, msgRequestsTooLong)

	case errors.Is(err, createBooking.ErrInvalidInput):
		h.logger.Warn("POST /book - Invalid input: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	// Дата и время
	case errors.Is(err, createBooking.ErrInvalidDate):
		h.logger.Warn("POST /book - Date in the past: date=%s", req.Date)
		handlers.RespondBadRequest(w, msgPastDate)

	case errors.Is(err, createBooking.ErrDateTooFarInFuture):
		h.logger.Warn("POST /book - Date too far in future: date=%s", req.Date)
		handlers.RespondBadRequest(w, msgDateTooFar)

	case errors.Is(err, createBooking.ErrClosed):
		h.logger.Warn("POST /book - Closed: date=%s", req.Date)
		handlers.RespondBadRequest(w, msgClosed)

	case errors.Is(err, createBooking.ErrInvalidTimeSlot):
		h.logger.Warn("POST /book - Invalid time slot: date=%s, time=%s", req.Date, req.TimeSlot)
		handlers.RespondBadRequest(w, msgInvalidTimeSlot)

	case errors.Is(err, createBooking.ErrTooLateToBook):
		h.logger.Warn("POST /book - Too late to book: date=%s, time=%s", req.Date, req.TimeSlot)
		handlers.RespondBadRequest(w, msgTooLateToBook)

	// Календарь
	case errors.Is(err, createBooking.ErrSlotConflict):
		h.logger.Warn("POST /book - Slot taken: date=%s, time=%s", req.Date, req.TimeSlot)
		handlers.RespondErrorBody(w, http.StatusConflict, handlers.ErrorResponse{
			Error:   msgBookingFailed,
			Message: msgSlotTaken,
		})

	case errors.Is(err, createBooking.ErrCalendarPermission):
		h.logger.Error("POST /book - Calendar permission denied: %v", err)
		handlers.RespondErrorBody(w, http.StatusForbidden, handlers.ErrorResponse{
			Error:   msgBookingFailed,
			Message: msgPermissionDenied,
			Details: msgPermissionDetails,
		})

	case errors.Is(err, createBooking.ErrCalendarUnavailable):
		h.logger.Error("POST /book - Calendar unavailable: %v", err)
		handlers.RespondErrorBody(w, http.StatusServiceUnavailable, handlers.ErrorResponse{
			Error:   msgBookingFailed,
			Message: msgCalendarUnavailable,
		})

	default:
		h.logger.Error("POST /book - Failed to create booking: date=%s, time=%s, error=%v", req.Date, req.TimeSlot, err)
		handlers.RespondInternalError(w)
	}
}
