package send_contact_message

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RageRoomService/internal/api/handlers"
	sendContactMessage "github.com/m04kA/SMC-RageRoomService/internal/usecase/send_contact_message"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgMissingFields      = "Missing required fields"
	msgInvalidInput       = "Invalid contact form data"
	msgSendFailed         = "Failed to send message"
	msgTryLater           = "Your message could not be delivered. Please try again later or contact us by phone."
	msgSent               = "Message sent successfully"
)

type Handler struct {
	useCase SendContactMessageUseCase
	logger  Logger
}

func NewHandler(useCase SendContactMessageUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/contact
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /contact - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if !req.hasRequiredFields() {
		h.logger.Warn("POST /contact - Missing required fields")
		handlers.RespondJSON(w, http.StatusBadRequest, MissingFieldsResponse{Error: msgMissingFields, Required: requiredFields})
		return
	}

	err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, sendContactMessage.ErrInvalidInput):
			h.logger.Warn("POST /contact - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, sendContactMessage.ErrNotConfigured), errors.Is(err, sendContactMessage.ErrDeliveryFailed):
			h.logger.Error("POST /contact - Failed to send message: %v", err)
			handlers.RespondErrorBody(w, http.StatusInternalServerError, handlers.ErrorResponse{
				Error:   msgSendFailed,
				Message: msgTryLater,
			})

		default:
			h.logger.Error("POST /contact - Unexpected error: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /contact - Message sent")
	handlers.RespondJSON(w, http.StatusOK, ContactResponse{Success: true, Message: msgSent})
}
