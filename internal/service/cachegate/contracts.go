package cachegate

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// CacheStore хранилище записей кэша (Redis или память)
type CacheStore interface {
	// Get возвращает запись или domain.ErrCacheMiss
	Get(ctx context.Context, key string) (*domain.CacheEntry, error)
	// Set целиком заменяет запись
	Set(ctx context.Context, entry *domain.CacheEntry) error
}

// Source таблица-источник, от которой зависит запись кэша.
// Version возвращает версию таблицы, видимую в транзакции из контекста (или последнюю зафиксированную вне ее).
type Source struct {
	Table   string
	Version func(ctx context.Context) (int64, error)
}

// Snapshotter выполняет fn в read-only транзакции с единым снимком данных
type Snapshotter interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics приемник метрик кэша
type Metrics interface {
	RecordCacheLookup(kind, status string)
	ObserveCacheRebuild(kind string, duration time.Duration)
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

type noopMetrics struct{}

type noSnapshot struct{}

func (noSnapshot) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (noopMetrics) RecordCacheLookup(string, string) {}
func (noopMetrics) ObserveCacheRebuild(string, time.Duration) {}
