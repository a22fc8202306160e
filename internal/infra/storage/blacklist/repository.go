package blacklist

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

// Repository репозиторий черного списка клиентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория черного списка
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetExclusion возвращает мастеров, которые не принимают клиента
// Запись с staff_name = '*' означает суперчерный список: исключаются все мастера
func (r *Repository) GetExclusion(ctx context.Context, customerID string) (*domain.Exclusion, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("staff_name").
		From("blacklist").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("staff_name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetExclusion - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetExclusion - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	exclusion := &domain.Exclusion{StaffNames: make([]string, 0)}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%w: GetExclusion - scan row: %v", ErrScanRow, err)
		}
		if name == domain.SuperBlacklistMarker {
			exclusion.All = true
			continue
		}
		exclusion.StaffNames = append(exclusion.StaffNames, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetExclusion - rows error: %v", ErrScanRow, err)
	}

	return exclusion, nil
}
