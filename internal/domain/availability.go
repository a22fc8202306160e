package domain

import "time"

// Bitmap holds one boolean per block of a day
type Bitmap [BlocksTotal]bool

// SetRange sets every block of r, clipped to the bitmap bounds
func (b *Bitmap) SetRange(r BlockRange) {
	for i := max(r.Start, 0); i < min(r.End, BlocksTotal); i++ {
		b[i] = true
	}
}

// AllSet reports whether every block in [start, start+n) is set
func (b *Bitmap) AllSet(start, n int) bool {
	if start < 0 || n <= 0 || start+n > BlocksTotal {
		return false
	}
	for i := start; i < start+n; i++ {
		if !b[i] {
			return false
		}
	}
	return true
}

// Any reports whether at least one block is set
func (b *Bitmap) Any() bool {
	for _, v := range b {
		if v {
			return true
		}
	}
	return false
}

// Ranges returns the maximal runs of set blocks in ascending order
func (b *Bitmap) Ranges() []BlockRange {
	ranges := make([]BlockRange, 0)
	start := -1
	for i, v := range b {
		switch {
		case v && start < 0:
			start = i
		case !v && start >= 0:
			ranges = append(ranges, BlockRange{Start: start, End: i})
			start = -1
		}
	}
	if start >= 0 {
		ranges = append(ranges, BlockRange{Start: start, End: BlocksTotal})
	}
	return ranges
}

// RoomCounts holds one room count per block of a day.
// Kept separate from Bitmap: rooms are counted, staff are on/off.
type RoomCounts [BlocksTotal]int

// StaffDailyAvailability combines a staff member's roster with booked work for one date.
// Free is always derived from Roster and Busy.
type StaffDailyAvailability struct {
	StaffName string    `json:"staff_name"`
	Date      time.Time `json:"date"`
	Roster    Bitmap    `json:"roster"`
	Busy      Bitmap    `json:"busy"`
}

// Free returns roster AND NOT busy for every block
func (a *StaffDailyAvailability) Free() Bitmap {
	var free Bitmap
	for i := range free {
		free[i] = a.Roster[i] && !a.Busy[i]
	}
	return free
}

// IsFreeWindow reports whether the staff member is free for the whole window
func (a *StaffDailyAvailability) IsFreeWindow(start, n int) bool {
	free := a.Free()
	return free.AllSet(start, n)
}

// StoreDailyCapacity combines a store's room count with booked work for one date
type StoreDailyCapacity struct {
	StoreID   int64      `json:"store_id"`
	StoreName string     `json:"store_name"`
	Date      time.Time  `json:"date"`
	Capacity  int        `json:"capacity"`
	Occupied  RoomCounts `json:"occupied"`
}

// Free returns max(capacity - occupied, 0) for every block
func (c *StoreDailyCapacity) Free() RoomCounts {
	var free RoomCounts
	for i := range free {
		free[i] = max(c.Capacity-c.Occupied[i], 0)
	}
	return free
}
