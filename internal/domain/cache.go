package domain

import (
	"fmt"
	"time"
)

// CacheKind identifies what a cache entry holds
type CacheKind string

const (
	CacheKindStaffFree  CacheKind = "staff_free"
	CacheKindRoomFree   CacheKind = "room_free"
	CacheKindStaffStore CacheKind = "staff_store"
)

// ScopeAll is the scope of entries that cover every staff member or store of a date
const ScopeAll = "all"

// CacheKey scopes a cache entry to one kind, one date and one scope
type CacheKey struct {
	Kind  CacheKind
	Date  time.Time
	Scope string
}

// String renders the key as kind:date:scope
func (k CacheKey) String() string {
	return fmt.Sprintf("%s:%s:%s", k.Kind, k.Date.Format(DateFormat), k.Scope)
}

// CacheEntry is a computed payload stamped with the versions of its source tables
// as seen by the snapshot it was computed from.
// Entries are replaced wholesale, never mutated.
type CacheEntry struct {
	Key        string           `json:"key"`
	ComputedAt time.Time        `json:"computed_at"`
	Versions   map[string]int64 `json:"versions"`
	Payload    []byte           `json:"payload"`
}
