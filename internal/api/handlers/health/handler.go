package health

import (
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-RageRoomService/internal/api/handlers"
)

// Response HTTP response model
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type Handler struct {
	response Response
}

func NewHandler(businessName string) *Handler {
	return &Handler{
		response: Response{
			Status:  "ok",
			Message: fmt.Sprintf("%s API is running", businessName),
		},
	}
}

// Handle GET /health
// Не ходит в календарь: проверка живости процесса, а не зависимостей
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.response)
}
