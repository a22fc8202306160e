package get_staff_bitmap

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Request модель запроса битовой карты мастера
type Request struct {
	StaffName string
	Date      time.Time
}

// Response модель ответа с битовыми картами мастера на дату
type Response struct {
	StaffName  string
	Date       time.Time
	Roster     domain.Bitmap
	Busy       domain.Bitmap
	Free       domain.Bitmap
	FreeRanges []TimeRange
}

// TimeRange интервал свободного времени [Start, End)
type TimeRange struct {
	Start types.TimeString
	End   types.TimeString
}
