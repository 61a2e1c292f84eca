package notifier

import (
	"context"

	"github.com/hibiken/asynq"

	"github.com/ahmadnk31/fixwise/internal/integrations/mailer"
)

// TaskClient ставит задачи в очередь (реализуется *asynq.Client)
type TaskClient interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Mailer отправляет письма
type Mailer interface {
	Send(ctx context.Context, msg *mailer.Message) (string, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
