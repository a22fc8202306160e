package get_staff_bitmap

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule"
)

// UseCase use case получения битовой карты доступности мастера
type UseCase struct {
	scheduleService ScheduleService
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(scheduleService ScheduleService, logger Logger) *UseCase {
	return &UseCase{
		scheduleService: scheduleService,
		logger:          logger,
	}
}

// Execute выполняет use case получения битовой карты мастера
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetStaffBitmap: staff=%s, date=%s", req.StaffName, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if strings.TrimSpace(req.StaffName) == "" {
		return nil, fmt.Errorf("%w: staff name is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// 2. Доступность мастера
	availability, err := uc.scheduleService.GetStaff(ctx, req.StaffName, req.Date)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrStaffNotFound):
			uc.logger.Warn("GetStaffBitmap: staff=%s not found", req.StaffName)
			return nil, ErrStaffNotFound
		case errors.Is(err, domain.ErrSourceUnavailable):
			uc.logger.Error("GetStaffBitmap: source unavailable: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
		default:
			uc.logger.Error("GetStaffBitmap: failed to get availability: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	// 3. Свободные интервалы
	free := availability.Free()
	ranges := make([]TimeRange, 0)
	for _, r := range free.Ranges() {
		start, err := domain.BlockToTime(r.Start)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		end, err := domain.BlockEndToTime(r.End)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		ranges = append(ranges, TimeRange{Start: start, End: end})
	}

	return &Response{
		StaffName:  availability.StaffName,
		Date:       req.Date,
		Roster:     availability.Roster,
		Busy:       availability.Busy,
		Free:       free,
		FreeRanges: ranges,
	}, nil
}
