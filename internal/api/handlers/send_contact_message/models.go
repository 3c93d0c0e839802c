package send_contact_message

import (
	"strings"

	sendContactMessage "github.com/m04kA/SMC-RageRoomService/internal/usecase/send_contact_message"
)

// ContactRequest HTTP request model
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message"`
}

// MissingFieldsResponse ответ при отсутствии обязательных полей
type MissingFieldsResponse struct {
	Error    string   `json:"error"`
	Required []string `json:"required"`
}

// ContactResponse HTTP response model
type ContactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

var requiredFields = []string{"name", "email", "message"}

func (r *ContactRequest) hasRequiredFields() bool {
	return strings.TrimSpace(r.Name) != "" &&
		strings.TrimSpace(r.Email) != "" &&
		strings.TrimSpace(r.Message) != ""
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ContactRequest) ToUseCaseRequest() *sendContactMessage.Request {
	return &sendContactMessage.Request{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Message: r.Message,
	}
}
