package schedule

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

// Service сервис дневной доступности мастеров
type Service struct {
	rosterRepo RosterRepository
	taskRepo   TaskRepository
	staffRepo  StaffRepository
	txManager  TransactionManager
	gate       *cachegate.Gate
	logger     Logger
}

// NewService создает новый экземпляр сервиса доступности мастеров
func NewService(
	rosterRepo RosterRepository,
	taskRepo TaskRepository,
	staffRepo StaffRepository,
	txManager TransactionManager,
	gate *cachegate.Gate,
	logger Logger,
) *Service {
	return &Service{
		rosterRepo: rosterRepo,
		taskRepo:   taskRepo,
		staffRepo:  staffRepo,
		txManager:  txManager,
		gate:       gate,
		logger:     logger,
	}
}

// GetAll возвращает доступность всех мастеров на дату через кэш
func (s *Service) GetAll(ctx context.Context, date time.Time) (map[string]domain.StaffDailyAvailability, error) {
	key := domain.CacheKey{Kind: domain.CacheKindStaffFree, Date: date, Scope: domain.ScopeAll}

	result, status, err := cachegate.Fetch(ctx, s.gate, key, s.sources(), func(ctx context.Context) (map[string]domain.StaffDailyAvailability, error) {
		return s.build(ctx, date)
	})
	if err != nil {
		s.logger.Error("GetAll: failed to get staff availability for date=%s: %v", date.Format(domain.DateFormat), err)
		if errors.Is(err, ErrInvalidSource) {
			return nil, fmt.Errorf("%w: GetAll - %w", ErrInternal, err)
		}
		if errors.Is(err, domain.ErrSourceUnavailable) || ctx.Err() != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: GetAll - %v", ErrSourceUnavailable, err)
	}

	s.logger.Info("GetAll: date=%s, staff=%d, cache=%s", date.Format(domain.DateFormat), len(result), status)
	return result, nil
}

// GetStaff возвращает доступность одного мастера на дату
func (s *Service) GetStaff(ctx context.Context, staffName string, date time.Time) (*domain.StaffDailyAvailability, error) {
	all, err := s.GetAll(ctx, date)
	if err != nil {
		return nil, err
	}

	availability, ok := all[staffName]
	if !ok {
		s.logger.Warn("GetStaff: staff=%s not found for date=%s", staffName, date.Format(domain.DateFormat))
		return nil, ErrStaffNotFound
	}
	return &availability, nil
}

// build читает мастеров, расписание и задачи одним снимком и агрегирует их
func (s *Service) build(ctx context.Context, date time.Time) (map[string]domain.StaffDailyAvailability, error) {
	var (
		staffs []domain.Staff
		slots  []domain.RosterSlot
		tasks  []domain.Task
	)

	err := s.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		var err error
		if staffs, err = s.staffRepo.GetAll(ctx); err != nil {
			return fmt.Errorf("%w: staffs: %v", ErrSourceUnavailable, err)
		}
		if slots, err = s.rosterRepo.GetByDate(ctx, date); err != nil {
			return fmt.Errorf("%w: schedules: %v", ErrSourceUnavailable, err)
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

	return Aggregate(date, staffs, slots, tasks)
}

func (s *Service) sources() []cachegate.Source {
	return []cachegate.Source{
		{Table: tablemeta.TableStaffs, Version: s.staffRepo.Version},
		{Table: tablemeta.TableSchedules, Version: s.rosterRepo.Version},
		{Table: tablemeta.TableTasks, Version: s.taskRepo.Version},
	}
}
