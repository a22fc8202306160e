package get_staff_shifts

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	getStaffShifts "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_staff_shifts"
)

// StaffShiftsResponse HTTP response model
type StaffShiftsResponse struct {
	Date   string       `json:"date"`
	Shifts []StaffShift `json:"shifts"`
}

// StaffShift смены мастера
type StaffShift struct {
	StaffName string   `json:"staffName"`
	Ranges    []string `json:"ranges"`
	StoreIDs  []int64  `json:"storeIds"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getStaffShifts.Response) *StaffShiftsResponse {
	shifts := make([]StaffShift, len(resp.Shifts))
	for i, s := range resp.Shifts {
		storeIDs := s.StoreIDs
		if storeIDs == nil {
			storeIDs = []int64{}
		}
		shifts[i] = StaffShift{
			StaffName: s.StaffName,
			Ranges:    s.Ranges,
			StoreIDs:  storeIDs,
		}
	}

	return &StaffShiftsResponse{
		Date:   resp.Date.Format(domain.DateFormat),
		Shifts: shifts,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(dateStr string, storeID *int64) (*getStaffShifts.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getStaffShifts.Request{
		Date:    date,
		StoreID: storeID,
	}, nil
}
