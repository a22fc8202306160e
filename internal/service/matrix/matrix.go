package matrix

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/observability/tracing"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

// Matrix проверяет мастеров на окно времени параллельно, на ограниченном пуле воркеров
type Matrix struct {
	availability AvailabilitySource
	staffDir     StaffDirectory
	distribution DistributionSource
	metrics      Metrics
	logger       Logger
	poolSize     int
}

// NewMatrix создает новый экземпляр Matrix
func NewMatrix(availability AvailabilitySource, staffDir StaffDirectory, distribution DistributionSource, metrics Metrics, logger Logger, poolSize int) *Matrix {
	if poolSize <= 0 {
		poolSize = domain.DefaultWorkerPoolSize
	}
	return &Matrix{
		availability: availability,
		staffDir:     staffDir,
		distribution: distribution,
		metrics:      metrics,
		logger:       logger,
		poolSize:     poolSize,
	}
}

// Evaluate классифицирует мастеров как доступных или недоступных с альтернативным временем.
// При пустом списке проверяются все мастера, работающие в филиале в этот день, и в результат попадают только доступные.
func (m *Matrix) Evaluate(ctx context.Context, req *Request) (result *Result, err error) {
	if err := domain.CheckWindow(req.StartBlock, req.RequiredBlocks); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	// 1. Кого проверяем
	names := req.StaffNames
	anyStaff := len(names) == 0
	if anyStaff {
		names, err = m.storeStaff(ctx, req.Date, req.StoreID)
		if err != nil {
			return nil, err
		}
	}

	ctx, span := tracing.StartMatrixSpan(ctx, len(names), req.StartBlock, req.RequiredBlocks)
	defer func() { tracing.End(span, err) }()

	// 2. Снимок доступности на дату
	all, err := m.availability.GetAll(ctx, req.Date)
	if err != nil {
		m.logger.Error("Evaluate: failed to get staff availability: %v", err)
		if errors.Is(err, domain.ErrSourceUnavailable) || ctx.Err() != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: Evaluate - %w", ErrInternal, err)
	}

	// 3. Параллельная проверка: каждый воркер пишет только в свой слот
	verdicts := make([]StaffVerdict, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.poolSize)
	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			availability, ok := all[name]
			if !ok {
				m.logger.Warn("Evaluate: staff=%s has no availability for date=%s", name, req.Date.Format(domain.DateFormat))
			}
			verdicts[i] = evaluateStaff(name, &availability, req.StartBlock, req.RequiredBlocks)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// 4. Агрегация только после завершения всех воркеров
	result = &Result{
		Available:   make([]string, 0),
		Unavailable: make([]StaffVerdict, 0),
	}
	for _, v := range verdicts {
		if m.metrics != nil {
			m.metrics.RecordStaffVerdict(string(v.Verdict))
		}
		switch {
		case v.Verdict == VerdictAvailable:
			result.Available = append(result.Available, v.StaffName)
		case !anyStaff:
			result.Unavailable = append(result.Unavailable, v)
		}
	}
	result.Sufficient = len(result.Available) >= req.PartySize

	m.logger.Info("Evaluate: date=%s, start=%d, blocks=%d, checked=%d, available=%d",
		req.Date.Format(domain.DateFormat), req.StartBlock, req.RequiredBlocks, len(names), len(result.Available))
	return result, nil
}

// storeStaff возвращает включенных мастеров, работающих в филиале в этот день.
// Филиалы берутся из распределения на дату: с учетом задач дня и принудительных назначений.
func (m *Matrix) storeStaff(ctx context.Context, date time.Time, storeID int64) ([]string, error) {
	staffs, err := m.staffDir.GetAll(ctx)
	if err != nil {
		m.logger.Error("Evaluate: failed to get staff list: %v", err)
		return nil, fmt.Errorf("%w: storeStaff - %v", ErrSourceUnavailable, err)
	}

	assignment, err := m.distribution.Resolve(ctx, date)
	if err != nil {
		m.logger.Error("Evaluate: failed to resolve staff stores for date=%s: %v", date.Format(domain.DateFormat), err)
		if errors.Is(err, domain.ErrSourceUnavailable) || ctx.Err() != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: storeStaff - %v", ErrSourceUnavailable, err)
	}

	names := make([]string, 0)
	for _, s := range staffs {
		if s.Enabled && assignment.WorksAt(s.Name, storeID) {
			names = append(names, s.Name)
		}
	}
	return names, nil
}

// evaluateStaff проверяет окно и при занятости ищет следующее свободное окно той же длины с шагом 15 минут
func evaluateStaff(name string, availability *domain.StaffDailyAvailability, start, required int) StaffVerdict {
	free := availability.Free()
	if free.AllSet(start, required) {
		return StaffVerdict{StaffName: name, Verdict: VerdictAvailable}
	}

	verdict := StaffVerdict{StaffName: name, Verdict: VerdictUnavailable}
	for s := start + domain.AlternativeStepBlocks; s < domain.BlocksPerDay && s+required <= domain.BlocksTotal; s += domain.AlternativeStepBlocks {
		if free.AllSet(s, required) {
			verdict.AlternativeBlock = ptr.Ptr(s)
			break
		}
	}
	return verdict
}
