package get_business_hours

import (
	"net/http"

	"github.com/m04kA/SMC-RageRoomService/internal/api/handlers"
)

type Handler struct {
	hours  BusinessHours
	opts   Options
	logger Logger
}

func NewHandler(hours BusinessHours, opts Options, logger Logger) *Handler {
	return &Handler{
		hours:  hours,
		opts:   opts,
		logger: logger,
	}
}

// Handle GET /api/hours
// Публичный endpoint: расписание не зависит от календаря и отдается всегда
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	response := BuildResponse(h.hours, h.opts)

	h.logger.Info("GET /hours - Business hours retrieved: timezone=%s", response.Timezone)
	handlers.RespondJSON(w, http.StatusOK, response)
}
