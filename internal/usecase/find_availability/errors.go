package find_availability

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid input data", domain.ErrValidation)

	// ErrTimeInPast возвращается, когда запрошенное время уже прошло
	ErrTimeInPast = fmt.Errorf("%w: requested time is in the past", domain.ErrValidation)

	// ErrStoreNotFound возвращается, когда филиал не найден
	ErrStoreNotFound = errors.New("store not found")

	// ErrSourceUnavailable возвращается, когда источники расписания, задач или филиалов недоступны
	ErrSourceUnavailable = fmt.Errorf("%w: find availability", domain.ErrSourceUnavailable)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
