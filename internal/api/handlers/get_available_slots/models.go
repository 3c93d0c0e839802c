package get_available_slots

import (
	"github.com/m04kA/SMC-RageRoomService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-RageRoomService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date       string   `json:"date"`
	Available  []string `json:"available"` // ["10:00", "10:30", ...]
	TotalSlots int      `json:"totalSlots"`
	Degraded   bool     `json:"degraded,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	available := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		available[i] = slot.String()
	}

	return &AvailableSlotsResponse{
		Date:       resp.Date.String(),
		Available:  available,
		TotalSlots: len(available),
		Degraded:   resp.Degraded,
	}
}

// ToUseCaseRequest создает запрос use case из query параметра date
func ToUseCaseRequest(dateStr string) (*getAvailableSlots.Request, error) {
	date, err := domain.ParseCalendarDate(dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{Date: date}, nil
}
