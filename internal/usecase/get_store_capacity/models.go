package get_store_capacity

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Request модель запроса загрузки комнат филиала
type Request struct {
	StoreID int64
	Date    time.Time
}

// Response модель ответа: количество свободных комнат по блокам
type Response struct {
	StoreID   int64
	StoreName string
	Date      time.Time
	Capacity  int
	Occupied  domain.RoomCounts
	Free      domain.RoomCounts
}
