package get_staff_shifts

import "time"

// Request модель запроса расписания смен на дату
type Request struct {
	Date    time.Time
	StoreID *int64 // только мастера, работающие в филиале в этот день (опционально)
}

// Response модель ответа со сменами мастеров
type Response struct {
	Date   time.Time
	Shifts []StaffShift
}

// StaffShift смены мастера в виде интервалов "HH:MM-HH:MM"
type StaffShift struct {
	StaffName string
	Ranges    []string
	StoreIDs  []int64
}
