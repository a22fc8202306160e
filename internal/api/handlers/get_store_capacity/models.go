package get_store_capacity

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	getStoreCapacity "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_store_capacity"
)

// StoreCapacityResponse HTTP response model
type StoreCapacityResponse struct {
	StoreID   int64  `json:"storeId"`
	StoreName string `json:"storeName"`
	Date      string `json:"date"`
	Capacity  int    `json:"capacity"`
	Occupied  []int  `json:"occupied"`
	Free      []int  `json:"free"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getStoreCapacity.Response) *StoreCapacityResponse {
	return &StoreCapacityResponse{
		StoreID:   resp.StoreID,
		StoreName: resp.StoreName,
		Date:      resp.Date.Format(domain.DateFormat),
		Capacity:  resp.Capacity,
		Occupied:  resp.Occupied[:],
		Free:      resp.Free[:],
	}
}

// ToUseCaseRequest создает запрос use case из параметров (с парсингом даты)
func ToUseCaseRequest(storeID int64, dateStr string) (*getStoreCapacity.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getStoreCapacity.Request{
		StoreID: storeID,
		Date:    date,
	}, nil
}
