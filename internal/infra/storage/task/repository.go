package task

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/tablemeta"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

// Filter фильтр задач на дату
type Filter struct {
	Date      time.Time // Обязательный параметр
	StoreID   *int64    // Фильтр по филиалу (опционально)
	StaffName *string   // Фильтр по мастеру (опционально)
}

// Repository репозиторий забронированных задач (сеансов)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория задач
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByFilter получает задачи на дату, отсортированные по времени начала (ASC)
// Порядок важен: последняя задача мастера за день определяет его филиал
func (r *Repository) GetByFilter(ctx context.Context, filter Filter) ([]domain.Task, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"staff_name",
		"store_id",
		"work_date",
		"start_time",
		"end_time",
		"minutes",
	).
		From(tablemeta.TableTasks).
		Where(squirrel.Eq{"work_date": filter.Date.Format(domain.DateFormat)})

	// Фильтрация по филиалу (если указан)
	if filter.StoreID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"store_id": *filter.StoreID})
	}

	// Фильтрация по мастеру (если указан)
	if filter.StaffName != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"staff_name": *filter.StaffName})
	}

	query, args, err := selectBuilder.OrderBy("start_time ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanTasks(rows)
}

// Version возвращает версию таблицы задач
func (r *Repository) Version(ctx context.Context) (int64, error) {
	return tablemeta.Version(ctx, r.db, tablemeta.TableTasks)
}

func (r *Repository) scanTasks(rows *sql.Rows) ([]domain.Task, error) {
	tasks := make([]domain.Task, 0)

	for rows.Next() {
		var t domain.Task
		var minutes sql.NullInt64

		err := rows.Scan(
			&t.ID,
			&t.StaffName,
			&t.StoreID,
			&t.Date,
			&t.StartTime,
			&t.EndTime,
			&minutes,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanTasks - scan row: %v", ErrScanRow, err)
		}

		t.Minutes = int(minutes.Int64)
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanTasks - rows error: %v", ErrScanRow, err)
	}

	return tasks, nil
}
