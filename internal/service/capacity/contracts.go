package capacity

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/task"
)

// StoreRepository интерфейс каталога филиалов
type StoreRepository interface {
	GetAll(ctx context.Context) ([]domain.Store, error)
	Version(ctx context.Context) (int64, error)
}

// TaskRepository интерфейс репозитория задач
type TaskRepository interface {
	GetByFilter(ctx context.Context, filter task.Filter) ([]domain.Task, error)
	Version(ctx context.Context) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
