package schedule

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// BuildRoster отмечает в битовой карте все блоки 30-минутных слотов смены
func BuildRoster(slots []domain.RosterSlot) (domain.Bitmap, error) {
	var roster domain.Bitmap
	for _, slot := range slots {
		start, err := domain.TimeToBlock(slot.SlotTime)
		if err != nil {
			return roster, fmt.Errorf("%w: roster slot %s of %s: %v", ErrInvalidSource, slot.SlotTime, slot.StaffName, err)
		}
		roster.SetRange(domain.BlockRange{Start: start, End: start + domain.BlocksPerRosterSlot})
	}
	return roster, nil
}

// BuildBusy отмечает блоки, занятые задачами, вместе с буфером после окончания
func BuildBusy(tasks []domain.Task) (domain.Bitmap, error) {
	var busy domain.Bitmap
	for _, t := range tasks {
		ranges, err := domain.OccupiedRanges(t.StartTime, t.EndTime)
		if err != nil {
			return busy, fmt.Errorf("%w: task id=%d: %v", ErrInvalidSource, t.ID, err)
		}
		for _, r := range ranges {
			busy.SetRange(r)
		}
	}
	return busy, nil
}

// Compose собирает дневную доступность мастера
func Compose(staffName string, date time.Time, roster, busy domain.Bitmap) domain.StaffDailyAvailability {
	return domain.StaffDailyAvailability{
		StaffName: staffName,
		Date:      date,
		Roster:    roster,
		Busy:      busy,
	}
}

// Aggregate строит доступность всех включенных мастеров на дату.
// Мастер без смен в расписании получает пустую карту (не работает), это не ошибка.
func Aggregate(date time.Time, staffs []domain.Staff, slots []domain.RosterSlot, tasks []domain.Task) (map[string]domain.StaffDailyAvailability, error) {
	slotsByStaff := make(map[string][]domain.RosterSlot)
	for _, slot := range slots {
		slotsByStaff[slot.StaffName] = append(slotsByStaff[slot.StaffName], slot)
	}
	tasksByStaff := make(map[string][]domain.Task)
	for _, t := range tasks {
		tasksByStaff[t.StaffName] = append(tasksByStaff[t.StaffName], t)
	}

	result := make(map[string]domain.StaffDailyAvailability, len(staffs))
	for _, staff := range staffs {
		if !staff.Enabled {
			continue
		}

		roster, err := BuildRoster(slotsByStaff[staff.Name])
		if err != nil {
			return nil, err
		}
		busy, err := BuildBusy(tasksByStaff[staff.Name])
		if err != nil {
			return nil, err
		}

		result[staff.Name] = Compose(staff.Name, date, roster, busy)
	}
	return result, nil
}
