package slotlock

import "errors"

var (
	// ErrLocked возвращается, когда слот уже удерживается другим запросом
	ErrLocked = errors.New("slotlock: slot is locked by another request")

	// ErrUnavailable возвращается при недоступности хранилища блокировок
	ErrUnavailable = errors.New("slotlock: lock storage unavailable")
)
