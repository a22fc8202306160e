package get_staff_bitmap

import (
	"context"

	getStaffBitmap "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_staff_bitmap"
)

type GetStaffBitmapUseCase interface {
	Execute(ctx context.Context, req *getStaffBitmap.Request) (*getStaffBitmap.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
