package domain

import "errors"

var (
	// ErrRiderNotFound возвращается когда rider отсутствует в store.
	// Для live-событий это штатный no-op, не ошибка.
	ErrRiderNotFound = errors.New("rider not found")

	// ErrBusinessNotFound возвращается когда бизнес отсутствует в каталоге
	ErrBusinessNotFound = errors.New("business not found")

	// ErrUnknownEventType возвращается при неизвестном type на входящем
	// канале. Это нарушение контракта транспорта — fatal, не skip.
	ErrUnknownEventType = errors.New("unknown event type")

	// ErrMalformedEvent возвращается когда тело события не декодируется.
	// Тоже нарушение контракта транспорта — fatal, retry бессмысленен.
	ErrMalformedEvent = errors.New("malformed event")
)
