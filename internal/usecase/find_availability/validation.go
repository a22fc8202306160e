package find_availability

import (
	"fmt"
	"strings"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, limits Limits) error {
	if req.StoreID <= 0 {
		return fmt.Errorf("%w: storeID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}

	if req.DurationMinutes <= 0 || req.DurationMinutes > limits.MaxDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be in (0, %d]", ErrInvalidInput, limits.MaxDurationMinutes)
	}

	if req.PartySize < 1 || req.PartySize > limits.MaxPartySize {
		return fmt.Errorf("%w: partySize must be in [1, %d]", ErrInvalidInput, limits.MaxPartySize)
	}

	for _, name := range req.StaffNames {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: staff name must not be empty", ErrInvalidInput)
		}
	}

	return nil
}

// isInPast проверяет, что начало сеанса раньше текущего момента.
// Дата запроса трактуется в часовом поясе now.
func isInPast(req *Request, now time.Time) bool {
	y, m, d := req.Date.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return req.StartTime.On(day).Before(now)
}

// dedupNames убирает повторы, сохраняя порядок
func dedupNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	result := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		result = append(result, name)
	}
	return result
}
