package get_store_capacity

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid input data", domain.ErrValidation)

	// ErrStoreNotFound возвращается, когда филиал не найден
	ErrStoreNotFound = errors.New("store not found")

	// ErrSourceUnavailable возвращается, когда филиалы или задачи недоступны
	ErrSourceUnavailable = fmt.Errorf("%w: store capacity", domain.ErrSourceUnavailable)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
