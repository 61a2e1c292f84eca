package preferences

import "errors"

var (
	// ErrShopNotFound возвращается, когда мастерская не найдена
	ErrShopNotFound = errors.New("preferences: shop not found")

	// ErrAccessDenied возвращается, когда пользователь не владелец мастерской
	ErrAccessDenied = errors.New("preferences: access denied")

	// ErrInvalidInput возвращается при некорректных значениях настроек
	ErrInvalidInput = errors.New("preferences: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("preferences: internal error")
)
