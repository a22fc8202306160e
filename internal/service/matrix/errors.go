package matrix

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

var (
	// ErrInvalidRequest возвращается при некорректном окне проверки
	ErrInvalidRequest = fmt.Errorf("%w: matrix", domain.ErrValidation)

	// ErrSourceUnavailable возвращается, когда не удалось получить доступность или список мастеров
	ErrSourceUnavailable = fmt.Errorf("%w: matrix", domain.ErrSourceUnavailable)

	// ErrInternal возвращается, когда доступность прочитана, но не собрана из-за некорректных данных
	ErrInternal = errors.New("matrix: internal error")
)
