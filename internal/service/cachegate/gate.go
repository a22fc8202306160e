package cachegate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/observability/tracing"
)

// Status результат проверки записи кэша
type Status string

const (
	StatusMissing Status = "missing"
	StatusFresh   Status = "fresh"
	StatusStale   Status = "stale"
)

// Gate выдает только актуальные записи кэша.
// Запись хранит версии таблиц-источников, прочитанные в том же снимке, из которого она посчитана.
// Запись актуальна, пока текущая версия каждой таблицы совпадает с сохраненной.
// Устаревшая или отсутствующая запись пересчитывается один раз на ключ, даже при одновременных запросах.
type Gate struct {
	store     CacheStore
	snapshots Snapshotter
	clock     TimeProvider
	metrics   Metrics
	logger    Logger
	group     singleflight.Group
}

// NewGate создает новый экземпляр Gate.
// Без snapshots версии и данные читаются вне общей транзакции.
func NewGate(store CacheStore, snapshots Snapshotter, clock TimeProvider, metrics Metrics, logger Logger) *Gate {
	if snapshots == nil {
		snapshots = noSnapshot{}
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Gate{
		store:     store,
		snapshots: snapshots,
		clock:     clock,
		metrics:   metrics,
		logger:    logger,
	}
}

// Fetch возвращает актуальное значение по ключу, пересчитывая его через build при необходимости.
// Возвращаемый статус описывает состояние записи до пересчета.
func Fetch[T any](ctx context.Context, g *Gate, key domain.CacheKey, sources []Source, build func(ctx context.Context) (T, error)) (T, Status, error) {
	var zero T

	raw := func(ctx context.Context) ([]byte, error) {
		value, err := build(ctx)
		if err != nil {
			return nil, err
		}
		payload, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("%w: Fetch - marshal %s: %v", ErrEncode, key, err)
		}
		return payload, nil
	}

	payload, status, err := g.fetch(ctx, key, sources, raw)
	if err != nil {
		return zero, status, err
	}

	var value T
	if err := json.Unmarshal(payload, &value); err != nil {
		return zero, status, fmt.Errorf("%w: Fetch - unmarshal %s: %v", ErrEncode, key, err)
	}
	return value, status, nil
}

// Check возвращает статус записи по ключу, ничего не пересчитывая
func (g *Gate) Check(ctx context.Context, key domain.CacheKey, sources []Source) Status {
	_, status := g.lookup(ctx, key.String(), sources)
	return status
}

func (g *Gate) fetch(ctx context.Context, key domain.CacheKey, sources []Source, build func(ctx context.Context) ([]byte, error)) ([]byte, Status, error) {
	keyStr := key.String()
	kind := string(key.Kind)

	ctx, span := tracing.StartCacheSpan(ctx, kind, keyStr)
	var spanErr error
	defer func() { tracing.End(span, spanErr) }()

	// 1. Проверка записи в кэше
	entry, status := g.lookup(ctx, keyStr, sources)
	g.metrics.RecordCacheLookup(kind, string(status))
	if status == StatusFresh {
		return entry.Payload, status, nil
	}

	// 2. Пересчет: один на ключ, остальные ждут его результат
	ch := g.group.DoChan(keyStr, func() (interface{}, error) {
		buildCtx := context.WithoutCancel(ctx)

		// Пока ждали, запись мог пересчитать другой запрос
		if current, st := g.lookup(buildCtx, keyStr, sources); st == StatusFresh {
			return current.Payload, nil
		}

		computedAt := g.clock.Now()
		started := time.Now()
		payload, versions, err := g.buildSnapshot(buildCtx, sources, build)
		g.metrics.ObserveCacheRebuild(kind, time.Since(started))
		if err != nil {
			if errors.Is(err, ErrEncode) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %s: %w", ErrBuild, keyStr, err)
		}

		err = g.store.Set(buildCtx, &domain.CacheEntry{
			Key:        keyStr,
			ComputedAt: computedAt,
			Versions:   versions,
			Payload:    payload,
		})
		if err != nil {
			g.logger.Warn("cachegate: failed to store %s: %v", keyStr, err)
		}
		return payload, nil
	})

	select {
	case <-ctx.Done():
		spanErr = ctx.Err()
		return nil, status, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			spanErr = res.Err
			return nil, status, res.Err
		}
		return res.Val.([]byte), status, nil
	}
}

// buildSnapshot читает версии источников и считает значение в одной транзакции.
// Изменение, зафиксированное после начала снимка, увеличит версию и сделает запись устаревшей.
func (g *Gate) buildSnapshot(ctx context.Context, sources []Source, build func(ctx context.Context) ([]byte, error)) ([]byte, map[string]int64, error) {
	var payload []byte
	versions := make(map[string]int64, len(sources))

	err := g.snapshots.DoReadOnly(ctx, func(ctx context.Context) error {
		// Версии читаются первыми: с них начинается снимок транзакции
		for _, src := range sources {
			version, err := src.Version(ctx)
			if err != nil {
				return fmt.Errorf("%w: version of %s: %w", domain.ErrSourceUnavailable, src.Table, err)
			}
			versions[src.Table] = version
		}

		var err error
		payload, err = build(ctx)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return payload, versions, nil
}

// lookup читает запись и сравнивает сохраненные версии источников с текущими
func (g *Gate) lookup(ctx context.Context, key string, sources []Source) (*domain.CacheEntry, Status) {
	entry, err := g.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			g.logger.Warn("cachegate: failed to read %s, treating as miss: %v", key, err)
		}
		return nil, StatusMissing
	}

	for _, src := range sources {
		current, err := src.Version(ctx)
		if err != nil {
			g.logger.Warn("cachegate: failed to get version of %s for %s: %v", src.Table, key, err)
			return entry, StatusStale
		}
		built, ok := entry.Versions[src.Table]
		if !ok || built != current {
			return entry, StatusStale
		}
	}

	return entry, StatusFresh
}
