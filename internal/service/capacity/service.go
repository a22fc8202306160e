package capacity

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

// Service сервис загрузки комнат филиалов
type Service struct {
	storeRepo StoreRepository
	taskRepo  TaskRepository
	txManager TransactionManager
	gate      *cachegate.Gate
	logger    Logger
}

// NewService создает новый экземпляр сервиса загрузки комнат
func NewService(
	storeRepo StoreRepository,
	taskRepo TaskRepository,
	txManager TransactionManager,
	gate *cachegate.Gate,
	logger Logger,
) *Service {
	return &Service{
		storeRepo: storeRepo,
		taskRepo:  taskRepo,
		txManager: txManager,
		gate:      gate,
		logger:    logger,
	}
}

// GetAll возвращает загрузку комнат всех филиалов на дату через кэш
func (s *Service) GetAll(ctx context.Context, date time.Time) (map[int64]domain.StoreDailyCapacity, error) {
	key := domain.CacheKey{Kind: domain.CacheKindRoomFree, Date: date, Scope: domain.ScopeAll}

	result, status, err := cachegate.Fetch(ctx, s.gate, key, s.sources(), func(ctx context.Context) (map[int64]domain.StoreDailyCapacity, error) {
		return s.build(ctx, date)
	})
	if err != nil {
		s.logger.Error("GetAll: failed to get room capacity for date=%s: %v", date.Format(domain.DateFormat), err)
		if errors.Is(err, ErrInvalidSource) {
			return nil, fmt.Errorf("%w: GetAll - %w", ErrInternal, err)
		}
		if errors.Is(err, domain.ErrSourceUnavailable) || ctx.Err() != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: GetAll - %v", ErrSourceUnavailable, err)
	}

	s.logger.Info("GetAll: date=%s, stores=%d, cache=%s", date.Format(domain.DateFormat), len(result), status)
	return result, nil
}

// GetStore возвращает загрузку комнат одного филиала на дату
func (s *Service) GetStore(ctx context.Context, storeID int64, date time.Time) (*domain.StoreDailyCapacity, error) {
	all, err := s.GetAll(ctx, date)
	if err != nil {
		return nil, err
	}

	capacity, ok := all[storeID]
	if !ok {
		s.logger.Warn("GetStore: store id=%d not found", storeID)
		return nil, ErrStoreNotFound
	}
	return &capacity, nil
}

func (s *Service) build(ctx context.Context, date time.Time) (map[int64]domain.StoreDailyCapacity, error) {
	var (
		stores []domain.Store
		tasks  []domain.Task
	)

	err := s.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		var err error
		if stores, err = s.storeRepo.GetAll(ctx); err != nil {
			return fmt.Errorf("%w: stores: %v", ErrSourceUnavailable, err)
		}
		if tasks, err = s.taskRepo.GetByFilter(ctx, task.Filter{Date: date}); err != nil {
			return fmt.Errorf("%w: tasks: %v", ErrSourceUnavailable, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrSourceUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	return Aggregate(date, stores, tasks)
}

func (s *Service) sources() []cachegate.Source {
	return []cachegate.Source{
		{Table: tablemeta.TableStores, Version: s.storeRepo.Version},
		{Table: tablemeta.TableTasks, Version: s.taskRepo.Version},
	}
}
