package find_availability

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Request модель запроса на проверку возможности бронирования
type Request struct {
	CustomerID      string           // ID клиента для черного списка (опционально)
	StoreID         int64            // ID филиала
	StaffNames      []string         // Запрошенные мастера; пустой список - любые
	Date            time.Time        // Дата сеанса (без времени)
	StartTime       types.TimeString // Желаемое время начала
	DurationMinutes int              // Длительность сеанса без буфера
	PartySize       int              // Количество человек (комнат)
}

// Response модель ответа с рекомендацией
type Response struct {
	StoreID        int64
	Date           time.Time
	Recommendation domain.BookingRecommendation
}

// Limits ограничения на параметры запроса
type Limits struct {
	MaxPartySize       int
	MaxDurationMinutes int
}
