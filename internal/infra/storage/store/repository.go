package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/tablemeta"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

var storeColumns = []string{
	"id",
	"name",
	"rooms",
	"open_time",
	"close_time",
}

// Repository репозиторий филиалов и их комнат
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория филиалов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает филиал по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Store, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(storeColumns...).
		From(tablemeta.TableStores).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Store
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.Name,
		&s.Rooms,
		&s.OpenTime,
		&s.CloseTime,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStoreNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan store: %v", ErrScanRow, err)
	}

	return &s, nil
}

// GetAll получает все филиалы, отсортированные по ID
func (r *Repository) GetAll(ctx context.Context) ([]domain.Store, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(storeColumns...).
		From(tablemeta.TableStores).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	stores := make([]domain.Store, 0)
	for rows.Next() {
		var s domain.Store
		if err := rows.Scan(&s.ID, &s.Name, &s.Rooms, &s.OpenTime, &s.CloseTime); err != nil {
			return nil, fmt.Errorf("%w: GetAll - scan row: %v", ErrScanRow, err)
		}
		stores = append(stores, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAll - rows error: %v", ErrScanRow, err)
	}

	return stores, nil
}

// Version возвращает версию таблицы филиалов
func (r *Repository) Version(ctx context.Context) (int64, error) {
	return tablemeta.Version(ctx, r.db, tablemeta.TableStores)
}
