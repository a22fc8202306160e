package distribution

import (
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// ErrSourceUnavailable возвращается, когда мастеров, задачи или назначения не удалось прочитать
var ErrSourceUnavailable = fmt.Errorf("%w: distribution.service", domain.ErrSourceUnavailable)
