package find_availability

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	findAvailability "github.com/m04kA/SMC-AvailabilityService/internal/usecase/find_availability"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// FindAvailabilityRequest HTTP request model
type FindAvailabilityRequest struct {
	StaffNames      []string `json:"staffNames"`
	Date            string   `json:"date"`
	StartTime       string   `json:"startTime"`
	DurationMinutes int      `json:"durationMinutes"`
	PartySize       int      `json:"partySize"`
}

// RecommendationResponse HTTP response model
type RecommendationResponse struct {
	StoreID          int64              `json:"storeId"`
	Date             string             `json:"date"`
	Feasible         bool               `json:"feasible"`
	RequestedTime    string             `json:"requestedTime"`
	EarliestTime     *string            `json:"earliestTime"`
	RequiredBlocks   int                `json:"requiredBlocks"`
	AvailableStaff   []string           `json:"availableStaff"`
	StaffElsewhere   []StaffElsewhere   `json:"staffElsewhere"`
	UnavailableStaff []UnavailableStaff `json:"unavailableStaff"`
	Room             Room               `json:"room"`
}

// StaffElsewhere мастер свободен, но работает в другом филиале
type StaffElsewhere struct {
	Name          string   `json:"name"`
	StoreIDs      []int64  `json:"storeIds"`
	StoreNames    []string `json:"storeNames"`
	AvailableTime *string  `json:"availableTime"`
	Note          string   `json:"note"`
}

// UnavailableStaff мастер занят в запрошенное время
type UnavailableStaff struct {
	Name            string  `json:"name"`
	AlternativeTime *string `json:"alternativeTime"`
}

// Room загрузка комнат в рекомендованное время
type Room struct {
	StoreID   int64  `json:"storeId"`
	StoreName string `json:"storeName"`
	Capacity  int    `json:"capacity"`
	FreeRooms int    `json:"freeRooms"`
}

// ToUseCaseRequest создает запрос use case из тела запроса (с парсингом даты и времени)
func ToUseCaseRequest(customerID string, storeID int64, req *FindAvailabilityRequest) (*findAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, err
	}

	return &findAvailability.Request{
		CustomerID:      customerID,
		StoreID:         storeID,
		StaffNames:      req.StaffNames,
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: req.DurationMinutes,
		PartySize:       req.PartySize,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *findAvailability.Response) *RecommendationResponse {
	rec := resp.Recommendation

	elsewhere := make([]StaffElsewhere, len(rec.StaffElsewhere))
	for i, s := range rec.StaffElsewhere {
		elsewhere[i] = StaffElsewhere{
			Name:          s.Name,
			StoreIDs:      s.StoreIDs,
			StoreNames:    s.StoreNames,
			AvailableTime: timePtr(s.AvailableTime),
			Note:          s.Note,
		}
	}

	unavailable := make([]UnavailableStaff, len(rec.UnavailableStaff))
	for i, s := range rec.UnavailableStaff {
		unavailable[i] = UnavailableStaff{
			Name:            s.Name,
			AlternativeTime: timePtr(s.AlternativeTime),
		}
	}

	available := rec.AvailableStaff
	if available == nil {
		available = []string{}
	}

	return &RecommendationResponse{
		StoreID:          resp.StoreID,
		Date:             resp.Date.Format(domain.DateFormat),
		Feasible:         rec.Feasible,
		RequestedTime:    rec.RequestedTime.String(),
		EarliestTime:     timePtr(rec.EarliestTime),
		RequiredBlocks:   rec.RequiredBlocks,
		AvailableStaff:   available,
		StaffElsewhere:   elsewhere,
		UnavailableStaff: unavailable,
		Room: Room{
			StoreID:   rec.Room.StoreID,
			StoreName: rec.Room.StoreName,
			Capacity:  rec.Room.Capacity,
			FreeRooms: rec.Room.FreeRooms,
		},
	}
}

func timePtr(t *types.TimeString) *string {
	if t == nil {
		return nil
	}
	s := t.String()
	return &s
}
