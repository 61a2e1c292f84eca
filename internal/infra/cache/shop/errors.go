package shop

import "errors"

var (
	// ErrCacheMiss возвращается, когда снимка мастерской нет в кэше
	ErrCacheMiss = errors.New("shop.cache: miss")

	// ErrCache возвращается при ошибках Redis и сериализации
	ErrCache = errors.New("shop.cache: redis error")
)
