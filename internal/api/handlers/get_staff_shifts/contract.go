package get_staff_shifts

import (
	"context"

	getStaffShifts "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_staff_shifts"
)

type GetStaffShiftsUseCase interface {
	Execute(ctx context.Context, req *getStaffShifts.Request) (*getStaffShifts.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
