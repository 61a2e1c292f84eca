package mailer

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("mailer client: internal error")

	// ErrInvalidRequest письмо отклонено сервисом, повторять бессмысленно
	ErrInvalidRequest = errors.New("mailer client: message rejected")

	// ErrUnauthorized неверный или отозванный API ключ
	ErrUnauthorized = errors.New("mailer client: unauthorized")

	// ErrUnavailable сервис временно недоступен, можно повторить позже
	ErrUnavailable = errors.New("mailer client: service unavailable")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("mailer client: invalid response")
)
