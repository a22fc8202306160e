package get_staff_shifts

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// UseCase use case отображения смен мастеров на дату
type UseCase struct {
	scheduleService     ScheduleService
	distributionService DistributionService
	logger              Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(scheduleService ScheduleService, distributionService DistributionService, logger Logger) *UseCase {
	return &UseCase{
		scheduleService:     scheduleService,
		distributionService: distributionService,
		logger:              logger,
	}
}

// Execute выполняет use case получения смен
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetStaffShifts: date=%s, store=%v", req.Date.Format(domain.DateFormat), req.StoreID)

	// 1. Валидация входных данных
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.StoreID != nil && *req.StoreID <= 0 {
		return nil, fmt.Errorf("%w: storeID must be positive", ErrInvalidInput)
	}

	// 2. Расписание всех мастеров и их филиалы
	all, err := uc.scheduleService.GetAll(ctx, req.Date)
	if err != nil {
		return nil, uc.mapError("failed to get schedules", err)
	}
	assignment, err := uc.distributionService.Resolve(ctx, req.Date)
	if err != nil {
		return nil, uc.mapError("failed to resolve staff stores", err)
	}

	// 3. Интервалы смен
	shifts := make([]StaffShift, 0, len(all))
	for name, availability := range all {
		if !availability.Roster.Any() {
			continue
		}
		// Мастер без назначения виден в любом филиале, как и при подборе
		if req.StoreID != nil && !assignment.WorksAt(name, *req.StoreID) {
			continue
		}
		stores := assignment[name]

		ranges, err := formatRanges(availability.Roster.Ranges())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		shifts = append(shifts, StaffShift{StaffName: name, Ranges: ranges, StoreIDs: stores})
	}
	sort.Slice(shifts, func(i, j int) bool { return shifts[i].StaffName < shifts[j].StaffName })

	uc.logger.Info("GetStaffShifts: date=%s, staff on shift=%d", req.Date.Format(domain.DateFormat), len(shifts))
	return &Response{Date: req.Date, Shifts: shifts}, nil
}

func (uc *UseCase) mapError(msg string, err error) error {
	uc.logger.Error("GetStaffShifts: %s: %v", msg, err)
	if errors.Is(err, domain.ErrSourceUnavailable) {
		return fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, msg, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrInternal, msg, err)
}

func formatRanges(ranges []domain.BlockRange) ([]string, error) {
	result := make([]string, 0, len(ranges))
	for _, r := range ranges {
		start, err := domain.BlockToTime(r.Start)
		if err != nil {
			return nil, err
		}
		end, err := domain.BlockEndToTime(r.End)
		if err != nil {
			return nil, err
		}
		result = append(result, fmt.Sprintf("%s-%s", start, end))
	}
	return result, nil
}
