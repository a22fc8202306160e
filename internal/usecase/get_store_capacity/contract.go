package get_store_capacity

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// CapacityService интерфейс сервиса загрузки комнат
type CapacityService interface {
	GetStore(ctx context.Context, storeID int64, date time.Time) (*domain.StoreDailyCapacity, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
