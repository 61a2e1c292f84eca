package notifier

import "errors"

var (
	// ErrEnqueue не удалось поставить задачу в очередь
	ErrEnqueue = errors.New("notifier: failed to enqueue task")

	// ErrInvalidPayload задачу нельзя разобрать
	ErrInvalidPayload = errors.New("notifier: invalid task payload")

	// ErrSend не удалось отправить письмо
	ErrSend = errors.New("notifier: failed to send email")
)
