package get_staff_shifts

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/distribution"
)

// ScheduleService интерфейс сервиса доступности мастеров
type ScheduleService interface {
	GetAll(ctx context.Context, date time.Time) (map[string]domain.StaffDailyAvailability, error)
}

// DistributionService интерфейс распределения мастеров по филиалам
type DistributionService interface {
	Resolve(ctx context.Context, date time.Time) (distribution.Assignment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
