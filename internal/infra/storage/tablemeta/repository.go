package tablemeta

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

// Таблицы-источники, для которых триггеры ведут версию
const (
	TableStaffs         = "staffs"
	TableStores         = "stores"
	TableSchedules      = "schedules"
	TableTasks          = "tasks"
	TableForceLocations = "force_locations"
)

var (
	// ErrNoVersion возвращается, когда для таблицы нет записи о версии
	ErrNoVersion = errors.New("tablemeta: table version unknown")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("tablemeta: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("tablemeta: failed to execute query")
)

// Version возвращает версию таблицы из table_modifications.
// Версия растет при фиксации каждой транзакции, изменившей таблицу.
// Внутри транзакции из контекста читается версия того же снимка, что и данные.
func Version(ctx context.Context, db dbmetrics.DBExecutor, table string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, db)

	query, args, err := psqlbuilder.Select("version").
		From("table_modifications").
		Where(squirrel.Eq{"table_name": table}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Version(%s): %v", ErrBuildQuery, table, err)
	}

	var version int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %s", ErrNoVersion, table)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: Version(%s): %v", ErrExecQuery, table, err)
	}

	return version, nil
}
