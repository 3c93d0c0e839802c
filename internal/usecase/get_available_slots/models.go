package get_available_slots

import (
	"github.com/m04kA/SMC-RageRoomService/internal/domain"
	"github.com/m04kA/SMC-RageRoomService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Date domain.CalendarDate // Дата в часовом поясе заведения
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date     domain.CalendarDate
	Slots    []types.TimeString // Времена начала свободных слотов по возрастанию
	Degraded bool               // Занятость не удалось получить, отдан нефильтрованный шаблон
}
