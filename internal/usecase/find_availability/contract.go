package find_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/distribution"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/matrix"
)

// CapacityService интерфейс сервиса загрузки комнат
type CapacityService interface {
	GetAll(ctx context.Context, date time.Time) (map[int64]domain.StoreDailyCapacity, error)
}

// StaffMatrix интерфейс проверки мастеров на окно времени
type StaffMatrix interface {
	Evaluate(ctx context.Context, req *matrix.Request) (*matrix.Result, error)
}

// DistributionService интерфейс распределения мастеров по филиалам
type DistributionService interface {
	Resolve(ctx context.Context, date time.Time) (distribution.Assignment, error)
}

// ExclusionRepository интерфейс черного списка клиента
type ExclusionRepository interface {
	GetExclusion(ctx context.Context, customerID string) (*domain.Exclusion, error)
}

// Metrics приемник метрик рекомендаций
type Metrics interface {
	RecordRecommendation(feasible bool)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
