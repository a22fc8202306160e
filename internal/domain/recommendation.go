package domain

import "github.com/m04kA/SMC-AvailabilityService/pkg/types"

// BookingRecommendation is the outcome of a feasibility check.
// Infeasible requests are reported here, not as errors.
type BookingRecommendation struct {
	Feasible         bool
	RequestedTime    types.TimeString
	EarliestTime     *types.TimeString // nil when no room slot exists that day
	RequiredBlocks   int
	AvailableStaff   []string
	StaffElsewhere   []StaffElsewhere
	UnavailableStaff []UnavailableStaff
	Room             RoomInfo
}

// StaffElsewhere is a staff member who is free but works at another store that day
type StaffElsewhere struct {
	Name          string
	StoreIDs      []int64
	StoreNames    []string
	AvailableTime *types.TimeString
	Note          string
}

// UnavailableStaff is a staff member who is busy at the requested time
type UnavailableStaff struct {
	Name            string
	AlternativeTime *types.TimeString // nil when the rest of the day is exhausted
}

// RoomInfo describes the room pool at the recommended time
type RoomInfo struct {
	StoreID   int64
	StoreName string
	Capacity  int
	FreeRooms int
}
