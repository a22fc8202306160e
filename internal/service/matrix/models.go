package matrix

import "time"

// Verdict результат проверки одного мастера
type Verdict string

const (
	VerdictAvailable   Verdict = "available"
	VerdictUnavailable Verdict = "unavailable"
)

// Request параметры проверки мастеров на окно [StartBlock, StartBlock+RequiredBlocks)
type Request struct {
	Date           time.Time
	StoreID        int64
	StaffNames     []string // пустой список: все мастера филиала
	StartBlock     int
	RequiredBlocks int
	PartySize      int
}

// StaffVerdict результат проверки мастера
type StaffVerdict struct {
	StaffName        string
	Verdict          Verdict
	AlternativeBlock *int // только для unavailable; nil если до конца дня окна нет
}

// Result итог проверки
type Result struct {
	Available   []string
	Unavailable []StaffVerdict
	Sufficient  bool
}
