package capacity

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

var (
	// ErrStoreNotFound возвращается, когда филиал не найден
	ErrStoreNotFound = errors.New("capacity.service: store not found")

	// ErrSourceUnavailable возвращается, когда филиалы или задачи не удалось прочитать
	ErrSourceUnavailable = fmt.Errorf("%w: capacity.service", domain.ErrSourceUnavailable)

	// ErrInvalidSource возвращается, когда время задачи не ложится в сетку блоков
	ErrInvalidSource = errors.New("capacity.service: invalid source record")

	// ErrInternal возвращается, когда данные прочитаны, но не прошли проверку при агрегации
	ErrInternal = errors.New("capacity.service: internal error")
)
