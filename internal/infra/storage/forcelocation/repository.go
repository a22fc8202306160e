package forcelocation

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

// Repository репозиторий принудительных назначений мастеров на филиалы
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория назначений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByDate получает назначения на дату
func (r *Repository) GetByDate(ctx context.Context, date time.Time) ([]domain.ForcedLocation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"staff_name",
		"work_date",
		"instores",
	).
		From(tablemeta.TableForceLocations).
		Where(squirrel.Eq{"work_date": date.Format(domain.DateFormat)}).
		OrderBy("staff_name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	locations := make([]domain.ForcedLocation, 0)
	for rows.Next() {
		var (
			fl       domain.ForcedLocation
			instores []byte
		)
		if err := rows.Scan(&fl.StaffName, &fl.Date, &instores); err != nil {
			return nil, fmt.Errorf("%w: GetByDate - scan row: %v", ErrScanRow, err)
		}

		fl.StoreIDs, err = tablemeta.DecodeStoreIDs(instores)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByDate - staff %s: %v", ErrScanRow, fl.StaffName, err)
		}

		locations = append(locations, fl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByDate - rows error: %v", ErrScanRow, err)
	}

	return locations, nil
}

// Version возвращает версию таблицы назначений
func (r *Repository) Version(ctx context.Context) (int64, error) {
	return tablemeta.Version(ctx, r.db, tablemeta.TableForceLocations)
}
