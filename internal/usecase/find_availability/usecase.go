package find_availability

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/observability/tracing"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/distribution"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/matrix"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/slotfinder"
)

// UseCase use case проверки возможности бронирования и подбора ближайшего времени
type UseCase struct {
	capacityService     CapacityService
	staffMatrix         StaffMatrix
	distributionService DistributionService
	exclusionRepo       ExclusionRepository
	metrics             Metrics
	timeProvider        TimeProvider
	logger              Logger
	limits              Limits
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	capacityService CapacityService,
	staffMatrix StaffMatrix,
	distributionService DistributionService,
	exclusionRepo ExclusionRepository,
	metrics Metrics,
	logger Logger,
	limits Limits,
) *UseCase {
	if limits.MaxPartySize <= 0 {
		limits.MaxPartySize = domain.DefaultMaxPartySize
	}
	if limits.MaxDurationMinutes <= 0 {
		limits.MaxDurationMinutes = domain.DefaultMaxDurationMinutes
	}
	return &UseCase{
		capacityService:     capacityService,
		staffMatrix:         staffMatrix,
		distributionService: distributionService,
		exclusionRepo:       exclusionRepo,
		metrics:             metrics,
		timeProvider:        &RealTimeProvider{},
		logger:              logger,
		limits:              limits,
	}
}

// Execute выполняет use case проверки возможности бронирования.
// Невозможность бронирования не является ошибкой: она возвращается как Feasible=false.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	uc.logger.Info("FindAvailability: store=%d, date=%s, start=%s, duration=%d, party=%d, staff=%v",
		req.StoreID, req.Date.Format(domain.DateFormat), req.StartTime, req.DurationMinutes, req.PartySize, req.StaffNames)

	ctx, span := tracing.StartStepSpan(ctx, "find_availability",
		attribute.Int64("store.id", req.StoreID),
		attribute.Int("request.party_size", req.PartySize),
	)
	defer func() { tracing.End(span, err) }()

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.limits); err != nil {
		uc.logger.Warn("FindAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем, что время не в прошлом
	if isInPast(req, uc.timeProvider.Now()) {
		uc.logger.Warn("FindAvailability: requested time %s %s is in the past", req.Date.Format(domain.DateFormat), req.StartTime)
		return nil, ErrTimeInPast
	}

	// 3. Переводим время в блоки
	requiredBlocks, err := domain.RequiredBlocks(req.DurationMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	startBlock, err := domain.TimeToBlock(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := domain.CheckWindow(startBlock, requiredBlocks); err != nil {
		uc.logger.Warn("FindAvailability: window does not fit the day: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	// 4. Загрузка комнат филиалов
	capacities, err := uc.capacityService.GetAll(ctx, req.Date)
	if err != nil {
		return nil, uc.sourceError("failed to get room capacity", err)
	}
	store, ok := capacities[req.StoreID]
	if !ok {
		uc.logger.Warn("FindAvailability: store id=%d not found", req.StoreID)
		return nil, ErrStoreNotFound
	}

	recommendation := domain.BookingRecommendation{
		RequestedTime:    req.StartTime,
		RequiredBlocks:   requiredBlocks,
		AvailableStaff:   []string{},
		StaffElsewhere:   []domain.StaffElsewhere{},
		UnavailableStaff: []domain.UnavailableStaff{},
		Room: domain.RoomInfo{
			StoreID:   store.StoreID,
			StoreName: store.StoreName,
			Capacity:  store.Capacity,
		},
	}

	// 5. Ближайшее время, когда свободно нужное количество комнат
	free := store.Free()
	roomBlock, found, err := slotfinder.FindEarliest(ctx, free, requiredBlocks, req.PartySize, startBlock)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		uc.logger.Error("FindAvailability: slot search failed: %v", err)
		return nil, fmt.Errorf("%w: slot search: %v", ErrInternal, err)
	}
	if !found {
		uc.logger.Info("FindAvailability: no room slot for party=%d at store=%d on %s",
			req.PartySize, req.StoreID, req.Date.Format(domain.DateFormat))
		uc.recordRecommendation(false)
		return &Response{StoreID: req.StoreID, Date: req.Date, Recommendation: recommendation}, nil
	}

	roomTime, err := domain.BlockToTime(roomBlock)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	recommendation.EarliestTime = &roomTime
	recommendation.Room.FreeRooms = minFree(free, roomBlock, requiredBlocks)

	// 6. Проверка мастеров на найденное время
	staffResult, err := uc.staffMatrix.Evaluate(ctx, &matrix.Request{
		Date:           req.Date,
		StoreID:        req.StoreID,
		StaffNames:     dedupNames(req.StaffNames),
		StartBlock:     roomBlock,
		RequiredBlocks: requiredBlocks,
		PartySize:      req.PartySize,
	})
	if err != nil {
		return nil, uc.sourceError("failed to evaluate staff", err)
	}

	// 7. Разделение доступных мастеров по филиалам
	assignment, err := uc.distributionService.Resolve(ctx, req.Date)
	if err != nil {
		return nil, uc.sourceError("failed to resolve staff stores", err)
	}
	here, elsewhere := distribution.Split(staffResult.Available, assignment, req.StoreID, &roomTime, storeNames(capacities))

	// 8. Черный список клиента
	exclusion, err := uc.exclusion(ctx, req.CustomerID)
	if err != nil {
		return nil, uc.sourceError("failed to get blacklist", err)
	}
	recommendation.AvailableStaff = filterNames(here, exclusion)
	recommendation.StaffElsewhere = filterElsewhere(elsewhere, exclusion)

	unavailable, err := toUnavailable(staffResult.Unavailable)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	recommendation.UnavailableStaff = unavailable

	// 9. Итог
	recommendation.Feasible = len(recommendation.AvailableStaff) >= req.PartySize
	uc.recordRecommendation(recommendation.Feasible)

	uc.logger.Info("FindAvailability: store=%d, date=%s, earliest=%s, feasible=%t, available=%d, elsewhere=%d, unavailable=%d",
		req.StoreID, req.Date.Format(domain.DateFormat), roomTime, recommendation.Feasible,
		len(recommendation.AvailableStaff), len(recommendation.StaffElsewhere), len(recommendation.UnavailableStaff))

	return &Response{StoreID: req.StoreID, Date: req.Date, Recommendation: recommendation}, nil
}

func (uc *UseCase) exclusion(ctx context.Context, customerID string) (*domain.Exclusion, error) {
	if customerID == "" || uc.exclusionRepo == nil {
		return nil, nil
	}
	exclusion, err := uc.exclusionRepo.GetExclusion(ctx, customerID)
	if err != nil && ctx.Err() == nil {
		return nil, fmt.Errorf("%w: blacklist: %w", domain.ErrSourceUnavailable, err)
	}
	return exclusion, err
}

func (uc *UseCase) sourceError(msg string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		uc.logger.Warn("FindAvailability: %s: %v", msg, err)
		return err
	}
	uc.logger.Error("FindAvailability: %s: %v", msg, err)
	if errors.Is(err, domain.ErrSourceUnavailable) {
		return fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, msg, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrInternal, msg, err)
}

func (uc *UseCase) recordRecommendation(feasible bool) {
	if uc.metrics != nil {
		uc.metrics.RecordRecommendation(feasible)
	}
}

// minFree минимальное количество свободных комнат в окне
func minFree(free domain.RoomCounts, start, n int) int {
	result := free[start]
	for i := start + 1; i < start+n && i < domain.BlocksTotal; i++ {
		result = min(result, free[i])
	}
	return result
}

func storeNames(capacities map[int64]domain.StoreDailyCapacity) map[int64]string {
	names := make(map[int64]string, len(capacities))
	for id, c := range capacities {
		names[id] = c.StoreName
	}
	return names
}

func filterNames(names []string, exclusion *domain.Exclusion) []string {
	result := make([]string, 0, len(names))
	for _, name := range names {
		if !exclusion.Excludes(name) {
			result = append(result, name)
		}
	}
	return result
}

func filterElsewhere(staff []domain.StaffElsewhere, exclusion *domain.Exclusion) []domain.StaffElsewhere {
	result := make([]domain.StaffElsewhere, 0, len(staff))
	for _, s := range staff {
		if !exclusion.Excludes(s.Name) {
			result = append(result, s)
		}
	}
	return result
}

func toUnavailable(verdicts []matrix.StaffVerdict) ([]domain.UnavailableStaff, error) {
	result := make([]domain.UnavailableStaff, 0, len(verdicts))
	for _, v := range verdicts {
		entry := domain.UnavailableStaff{Name: v.StaffName}
		if v.AlternativeBlock != nil {
			alt, err := domain.BlockToTime(*v.AlternativeBlock)
			if err != nil {
				return nil, err
			}
			entry.AlternativeTime = &alt
		}
		result = append(result, entry)
	}
	return result, nil
}
