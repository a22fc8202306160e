package get_store_capacity

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/capacity"
)

// UseCase use case получения загрузки комнат филиала
type UseCase struct {
	capacityService CapacityService
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(capacityService CapacityService, logger Logger) *UseCase {
	return &UseCase{
		capacityService: capacityService,
		logger:          logger,
	}
}

// Execute выполняет use case получения загрузки комнат
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetStoreCapacity: store=%d, date=%s", req.StoreID, req.Date.Format(domain.DateFormat))

	if req.StoreID <= 0 {
		return nil, fmt.Errorf("%w: storeID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	c, err := uc.capacityService.GetStore(ctx, req.StoreID, req.Date)
	if err != nil {
		switch {
		case errors.Is(err, capacity.ErrStoreNotFound):
			uc.logger.Warn("GetStoreCapacity: store id=%d not found", req.StoreID)
			return nil, ErrStoreNotFound
		case errors.Is(err, domain.ErrSourceUnavailable):
			uc.logger.Error("GetStoreCapacity: source unavailable: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
		default:
			uc.logger.Error("GetStoreCapacity: failed to get capacity: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	return &Response{
		StoreID:   c.StoreID,
		StoreName: c.StoreName,
		Date:      req.Date,
		Capacity:  c.Capacity,
		Occupied:  c.Occupied,
		Free:      c.Free(),
	}, nil
}
