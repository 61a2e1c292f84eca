package scheduling

import "errors"

var (
	// ErrInvalidDuration возвращается при неположительной длительности слота
	ErrInvalidDuration = errors.New("scheduling: slot duration must be positive")

	// ErrInvalidTime возвращается при некорректном времени начала или конца окна
	ErrInvalidTime = errors.New("scheduling: invalid time of day")
)
