package capacity

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// BuildOccupied считает количество одновременно занятых комнат в каждом блоке.
// Каждая задача занимает одну комнату от начала до окончания плюс буфер.
func BuildOccupied(tasks []domain.Task) (domain.RoomCounts, error) {
	var occupied domain.RoomCounts
	for _, t := range tasks {
		ranges, err := domain.OccupiedRanges(t.StartTime, t.EndTime)
		if err != nil {
			return occupied, fmt.Errorf("%w: task id=%d: %v", ErrInvalidSource, t.ID, err)
		}
		for _, r := range ranges {
			for i := max(r.Start, 0); i < min(r.End, domain.BlocksTotal); i++ {
				occupied[i]++
			}
		}
	}
	return occupied, nil
}

// Compose собирает дневную загрузку комнат филиала
func Compose(store domain.Store, date time.Time, occupied domain.RoomCounts) domain.StoreDailyCapacity {
	return domain.StoreDailyCapacity{
		StoreID:   store.ID,
		StoreName: store.Name,
		Date:      date,
		Capacity:  store.Rooms,
		Occupied:  occupied,
	}
}

// Aggregate строит загрузку комнат всех филиалов на дату.
// Задачи филиалов, которых нет в каталоге, игнорируются.
func Aggregate(date time.Time, stores []domain.Store, tasks []domain.Task) (map[int64]domain.StoreDailyCapacity, error) {
	tasksByStore := make(map[int64][]domain.Task)
	for _, t := range tasks {
		tasksByStore[t.StoreID] = append(tasksByStore[t.StoreID], t)
	}

	result := make(map[int64]domain.StoreDailyCapacity, len(stores))
	for _, store := range stores {
		occupied, err := BuildOccupied(tasksByStore[store.ID])
		if err != nil {
			return nil, err
		}
		result[store.ID] = Compose(store, date, occupied)
	}
	return result, nil
}
