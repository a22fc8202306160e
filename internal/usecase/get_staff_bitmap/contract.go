package get_staff_bitmap

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// ScheduleService интерфейс сервиса доступности мастеров
type ScheduleService interface {
	GetStaff(ctx context.Context, staffName string, date time.Time) (*domain.StaffDailyAvailability, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
