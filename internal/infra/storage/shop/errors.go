package shop

import "errors"

var (
	// ErrShopNotFound возвращается, когда мастерская не найдена
	ErrShopNotFound = errors.New("shop.repository: shop not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("shop.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("shop.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("shop.repository: failed to scan row")

	// ErrEncodePreferences возвращается, когда настройки не удалось сериализовать в JSON
	ErrEncodePreferences = errors.New("shop.repository: failed to encode preferences")
)
