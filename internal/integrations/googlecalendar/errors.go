package googlecalendar

import "errors"

var (
	// ErrPermissionDenied возвращается, когда сервисному аккаунту не хватает прав на календарь
	// (401/403 без признаков rate limit). Требует вмешательства оператора
	ErrPermissionDenied = errors.New("googlecalendar client: permission denied")

	// ErrUnavailable возвращается при временных сбоях: сеть, таймаут, 429, 5xx, rate limit
	ErrUnavailable = errors.New("googlecalendar client: service unavailable")

	// ErrInvalidResponse возвращается при неожиданном статусе или некорректном теле ответа
	ErrInvalidResponse = errors.New("googlecalendar client: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("googlecalendar client: internal error")

	// ErrInvalidCredentials возвращается при некорректном ключе сервисного аккаунта
	ErrInvalidCredentials = errors.New("googlecalendar client: invalid service account credentials")
)
