package googlecalendar

// EventDateTime время события в формате Google Calendar API
// Для событий на весь день заполнено только Date (YYYY-MM-DD)
type EventDateTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

// Event событие календаря
type Event struct {
	ID           string        `json:"id,omitempty"`
	Status       string        `json:"status,omitempty"`
	Summary      string        `json:"summary,omitempty"`
	Description  string        `json:"description,omitempty"`
	HTMLLink     string        `json:"htmlLink,omitempty"`
	Transparency string        `json:"transparency,omitempty"`
	ColorID      string        `json:"colorId,omitempty"`
	Start        EventDateTime `json:"start"`
	End          EventDateTime `json:"end"`
	Reminders    *Reminders    `json:"reminders,omitempty"`
}

// Reminders настройки напоминаний события
type Reminders struct {
	UseDefault bool               `json:"useDefault"`
	Overrides  []ReminderOverride `json:"overrides,omitempty"`
}

// ReminderOverride отдельное напоминание
type ReminderOverride struct {
	Method  string `json:"method"`
	Minutes int    `json:"minutes"`
}

// eventsListResponse ответ events.list
type eventsListResponse struct {
	Items         []Event `json:"items"`
	NextPageToken string  `json:"nextPageToken"`
}

// errorResponse тело ошибки Google API
type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Errors  []struct {
			Reason  string `json:"reason"`
			Message string `json:"message"`
		} `json:"errors"`
	} `json:"error"`
}

// Статусы и прозрачность событий, которые не занимают время
const (
	eventStatusCancelled    = "cancelled"
	transparencyTransparent = "transparent"
)
