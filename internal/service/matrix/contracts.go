package matrix

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/distribution"
)

// AvailabilitySource источник дневной доступности мастеров (сервис schedule)
type AvailabilitySource interface {
	GetAll(ctx context.Context, date time.Time) (map[string]domain.StaffDailyAvailability, error)
}

// StaffDirectory справочник мастеров
type StaffDirectory interface {
	GetAll(ctx context.Context) ([]domain.Staff, error)
}

// DistributionSource филиалы мастеров на дату (сервис distribution)
type DistributionSource interface {
	Resolve(ctx context.Context, date time.Time) (distribution.Assignment, error)
}

// Metrics приемник метрик проверки мастеров
type Metrics interface {
	RecordStaffVerdict(verdict string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
