package roster

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/tablemeta"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

// Repository репозиторий расписания смен мастеров (30-минутные слоты)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByDate получает все слоты расписания на дату, отсортированные по мастеру и времени
func (r *Repository) GetByDate(ctx context.Context, date time.Time) ([]domain.RosterSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"staff_name",
		"work_date",
		"slot_time",
	).
		From(tablemeta.TableSchedules).
		Where(squirrel.Eq{"work_date": date.Format(domain.DateFormat)}).
		OrderBy("staff_name ASC", "slot_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]domain.RosterSlot, 0)
	for rows.Next() {
		var slot domain.RosterSlot
		if err := rows.Scan(&slot.StaffName, &slot.Date, &slot.SlotTime); err != nil {
			return nil, fmt.Errorf("%w: GetByDate - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByDate - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// Version возвращает версию таблицы расписания
func (r *Repository) Version(ctx context.Context) (int64, error) {
	return tablemeta.Version(ctx, r.db, tablemeta.TableSchedules)
}
