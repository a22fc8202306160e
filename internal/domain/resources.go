package domain

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Staff represents a service-providing staff member (masseur)
type Staff struct {
	Name            string
	DefaultStoreIDs []int64 // stores the staff member works at by default
	Enabled         bool
	ShowPublic      bool
}

// WorksAt reports whether the store is among the staff member's default stores
func (s *Staff) WorksAt(storeID int64) bool {
	for _, id := range s.DefaultStoreIDs {
		if id == storeID {
			return true
		}
	}
	return false
}

// Store represents a branch with a shared pool of rooms
type Store struct {
	ID        int64
	Name      string
	Rooms     int
	OpenTime  types.TimeString
	CloseTime types.TimeString
}

// RosterSlot is one 30-minute rostered slot of a staff member
type RosterSlot struct {
	StaffName string
	Date      time.Time
	SlotTime  types.TimeString // start of the 30-minute slot
}

// Task is a booked piece of work occupying a staff member and a room
type Task struct {
	ID        int64
	StaffName string
	StoreID   int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Minutes   int
}

// ForcedLocation pins a staff member to specific stores on a date
type ForcedLocation struct {
	StaffName string
	Date      time.Time
	StoreIDs  []int64
}

// SuperBlacklistMarker in the blacklist staff column excludes every staff member
const SuperBlacklistMarker = "*"

// Exclusion lists staff members who must not be offered to a customer
type Exclusion struct {
	All        bool // super blacklist
	StaffNames []string
}

// Excludes reports whether the staff member is excluded
func (e *Exclusion) Excludes(staffName string) bool {
	if e == nil {
		return false
	}
	if e.All {
		return true
	}
	for _, name := range e.StaffNames {
		if name == staffName {
			return true
		}
	}
	return false
}
