package distribution

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/tablemeta"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/task"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/cachegate"
)

// Service сервис распределения мастеров по филиалам
type Service struct {
	staffRepo        StaffRepository
	taskRepo         TaskRepository
	forcedRepo       ForcedLocationRepository
	txManager        TransactionManager
	gate             *cachegate.Gate
	logger           Logger
	fallbackStoreIDs []int64
}

// NewService создает новый экземпляр сервиса распределения
func NewService(
	staffRepo StaffRepository,
	taskRepo TaskRepository,
	forcedRepo ForcedLocationRepository,
	txManager TransactionManager,
	gate *cachegate.Gate,
	logger Logger,
	fallbackStoreIDs []int64,
) *Service {
	return &Service{
		staffRepo:        staffRepo,
		taskRepo:         taskRepo,
		forcedRepo:       forcedRepo,
		txManager:        txManager,
		gate:             gate,
		logger:           logger,
		fallbackStoreIDs: fallbackStoreIDs,
	}
}

// Resolve возвращает филиалы всех мастеров на дату через кэш
func (s *Service) Resolve(ctx context.Context, date time.Time) (Assignment, error) {
	key := domain.CacheKey{Kind: domain.CacheKindStaffStore, Date: date, Scope: domain.ScopeAll}

	assignment, status, err := cachegate.Fetch(ctx, s.gate, key, s.sources(), func(ctx context.Context) (Assignment, error) {
		return s.build(ctx, date)
	})
	if err != nil {
		s.logger.Error("Resolve: failed to resolve staff stores for date=%s: %v", date.Format(domain.DateFormat), err)
		if errors.Is(err, domain.ErrSourceUnavailable) || ctx.Err() != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: Resolve - %v", ErrSourceUnavailable, err)
	}

	s.logger.Info("Resolve: date=%s, staff=%d, cache=%s", date.Format(domain.DateFormat), len(assignment), status)
	return assignment, nil
}

func (s *Service) build(ctx context.Context, date time.Time) (Assignment, error) {
	var (
		staffs []domain.Staff
		tasks  []domain.Task
		forced []domain.ForcedLocation
	)

	err := s.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		var err error
		if staffs, err = s.staffRepo.GetAll(ctx); err != nil {
			return fmt.Errorf("%w: staffs: %v", ErrSourceUnavailable, err)
		}
		if tasks, err = s.taskRepo.GetByFilter(ctx, task.Filter{Date: date}); err != nil {
			return fmt.Errorf("%w: tasks: %v", ErrSourceUnavailable, err)
		}
		if forced, err = s.forcedRepo.GetByDate(ctx, date); err != nil {
			return fmt.Errorf("%w: force_locations: %v", ErrSourceUnavailable, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrSourceUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	return Resolve(staffs, tasks, forced, s.fallbackStoreIDs), nil
}

func (s *Service) sources() []cachegate.Source {
	return []cachegate.Source{
		{Table: tablemeta.TableStaffs, Version: s.staffRepo.Version},
		{Table: tablemeta.TableTasks, Version: s.taskRepo.Version},
		{Table: tablemeta.TableForceLocations, Version: s.forcedRepo.Version},
	}
}
