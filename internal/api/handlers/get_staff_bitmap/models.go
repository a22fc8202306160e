package get_staff_bitmap

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	getStaffBitmap "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_staff_bitmap"
)

// StaffBitmapResponse HTTP response model.
// Битовые карты передаются строкой из '0' и '1', по символу на 5-минутный блок
type StaffBitmapResponse struct {
	StaffName  string      `json:"staffName"`
	Date       string      `json:"date"`
	Roster     string      `json:"roster"`
	Busy       string      `json:"busy"`
	Free       string      `json:"free"`
	FreeRanges []TimeRange `json:"freeRanges"`
}

// TimeRange интервал свободного времени
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getStaffBitmap.Response) *StaffBitmapResponse {
	ranges := make([]TimeRange, len(resp.FreeRanges))
	for i, r := range resp.FreeRanges {
		ranges[i] = TimeRange{Start: r.Start.String(), End: r.End.String()}
	}

	return &StaffBitmapResponse{
		StaffName:  resp.StaffName,
		Date:       resp.Date.Format(domain.DateFormat),
		Roster:     bits(resp.Roster),
		Busy:       bits(resp.Busy),
		Free:       bits(resp.Free),
		FreeRanges: ranges,
	}
}

// ToUseCaseRequest создает запрос use case из параметров (с парсингом даты)
func ToUseCaseRequest(staffName, dateStr string) (*getStaffBitmap.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getStaffBitmap.Request{
		StaffName: staffName,
		Date:      date,
	}, nil
}

func bits(b domain.Bitmap) string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, set := range b {
		if set {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
