package get_store_capacity

import (
	"context"

	getStoreCapacity "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_store_capacity"
)

type GetStoreCapacityUseCase interface {
	Execute(ctx context.Context, req *getStoreCapacity.Request) (*getStoreCapacity.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
