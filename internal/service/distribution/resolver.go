package distribution

import (
	"fmt"
	"slices"
	"strings"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Assignment филиалы, в которых мастер работает в этот день
type Assignment map[string][]int64

// Resolve определяет филиалы мастеров на дату.
// Порядок: филиалы по умолчанию, затем филиал последней задачи дня, затем принудительное назначение.
// tasks должны быть отсортированы по времени начала.
func Resolve(staffs []domain.Staff, tasks []domain.Task, forced []domain.ForcedLocation, fallbackStoreIDs []int64) Assignment {
	assignment := make(Assignment, len(staffs))
	for _, s := range staffs {
		if !s.Enabled {
			continue
		}
		stores := s.DefaultStoreIDs
		if len(stores) == 0 {
			stores = fallbackStoreIDs
		}
		assignment[s.Name] = slices.Clone(stores)
	}

	for _, t := range tasks {
		if _, ok := assignment[t.StaffName]; ok {
			assignment[t.StaffName] = []int64{t.StoreID}
		}
	}

	for _, f := range forced {
		if _, ok := assignment[f.StaffName]; ok && len(f.StoreIDs) > 0 {
			assignment[f.StaffName] = slices.Clone(f.StoreIDs)
		}
	}

	return assignment
}

// WorksAt сообщает, работает ли мастер в филиале storeID в этот день.
// Мастер без назначения (или с пустым списком филиалов) считается работающим в любом филиале.
func (a Assignment) WorksAt(name string, storeID int64) bool {
	stores, ok := a[name]
	return !ok || len(stores) == 0 || slices.Contains(stores, storeID)
}

// Split делит доступных мастеров на работающих в филиале storeID и работающих в другом месте.
// Мастера без назначения считаются работающими в филиале (см. WorksAt).
func Split(available []string, assignment Assignment, storeID int64, availableTime *types.TimeString, storeNames map[int64]string) ([]string, []domain.StaffElsewhere) {
	here := make([]string, 0, len(available))
	elsewhere := make([]domain.StaffElsewhere, 0)

	for _, name := range available {
		if assignment.WorksAt(name, storeID) {
			here = append(here, name)
			continue
		}
		stores := assignment[name]

		names := make([]string, 0, len(stores))
		for _, id := range stores {
			if storeName, ok := storeNames[id]; ok {
				names = append(names, storeName)
			} else {
				names = append(names, fmt.Sprintf("store %d", id))
			}
		}

		elsewhere = append(elsewhere, domain.StaffElsewhere{
			Name:          name,
			StoreIDs:      slices.Clone(stores),
			StoreNames:    names,
			AvailableTime: availableTime,
			Note:          "available at " + strings.Join(names, ", "),
		})
	}

	return here, elsewhere
}
