package staff

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/tablemeta"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

// Repository репозиторий мастеров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория мастеров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetAll получает всех мастеров (включая отключенных), отсортированных по имени
func (r *Repository) GetAll(ctx context.Context) ([]domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"name",
		"instores",
		"enabled",
		"show_public",
	).
		From(tablemeta.TableStaffs).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	staffs := make([]domain.Staff, 0)
	for rows.Next() {
		var (
			s        domain.Staff
			instores []byte
		)
		if err := rows.Scan(&s.Name, &instores, &s.Enabled, &s.ShowPublic); err != nil {
			return nil, fmt.Errorf("%w: GetAll - scan row: %v", ErrScanRow, err)
		}

		s.DefaultStoreIDs, err = tablemeta.DecodeStoreIDs(instores)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAll - staff %s: %v", ErrScanRow, s.Name, err)
		}

		staffs = append(staffs, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAll - rows error: %v", ErrScanRow, err)
	}

	return staffs, nil
}

// Version возвращает версию таблицы мастеров
func (r *Repository) Version(ctx context.Context) (int64, error) {
	return tablemeta.Version(ctx, r.db, tablemeta.TableStaffs)
}
