package notifyservice

import "errors"

var (
	// ErrUnavailable возвращается, когда NotifyService недоступен
	ErrUnavailable = errors.New("notifyservice client: service unavailable")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("notifyservice client: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifyservice client: internal error")
)
