package schedule

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

var (
	// ErrStaffNotFound возвращается, когда мастер не найден или отключен
	ErrStaffNotFound = errors.New("schedule.service: staff not found")

	// ErrSourceUnavailable возвращается, когда расписание или задачи не удалось прочитать
	ErrSourceUnavailable = fmt.Errorf("%w: schedule.service", domain.ErrSourceUnavailable)

	// ErrInvalidSource возвращается, когда запись расписания или задачи не ложится в сетку блоков
	ErrInvalidSource = errors.New("schedule.service: invalid source record")

	// ErrInternal возвращается, когда данные прочитаны, но не прошли проверку при агрегации
	ErrInternal = errors.New("schedule.service: internal error")
)
