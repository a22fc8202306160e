// Package slotfinder ищет самое раннее время, когда в филиале одновременно свободно нужное количество комнат.
package slotfinder

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// ErrInvalidRequest возвращается при некорректных параметрах поиска
var ErrInvalidRequest = fmt.Errorf("%w: slotfinder", domain.ErrValidation)

// FindEarliest возвращает самый ранний блок s >= earliest, такой что во всех блоках
// [s, s+requiredBlocks) свободно не меньше requiredRooms комнат. Старт ищется только внутри
// суток (s < 288), окно может заходить в буфер после полуночи.
// ok == false означает, что подходящего времени в этот день нет.
func FindEarliest(ctx context.Context, free domain.RoomCounts, requiredBlocks, requiredRooms, earliest int) (start int, ok bool, err error) {
	if requiredBlocks <= 0 || requiredBlocks > domain.BlocksTotal {
		return 0, false, fmt.Errorf("%w: required blocks %d", ErrInvalidRequest, requiredBlocks)
	}
	if requiredRooms <= 0 {
		return 0, false, fmt.Errorf("%w: required rooms %d", ErrInvalidRequest, requiredRooms)
	}
	if earliest < 0 || earliest >= domain.BlocksPerDay {
		return 0, false, fmt.Errorf("%w: earliest block %d", domain.ErrOutOfRange, earliest)
	}

	if requiredRooms == 1 {
		start, ok = scanRun(free, requiredBlocks, 1, earliest)
		return start, ok, nil
	}

	// 1. Кандидаты: самые ранние старты, где свободна хотя бы одна комната на все окно
	candidates := make([]int, 0, domain.MaxRoomCandidates)
	from := earliest
	for len(candidates) < domain.MaxRoomCandidates {
		candidate, found := scanRun(free, requiredBlocks, 1, from)
		if !found {
			break
		}
		candidates = append(candidates, candidate)
		from = candidate + 1
	}
	if len(candidates) == 0 {
		return 0, false, nil
	}

	// 2. Проверка кандидатов по возрастанию
	for _, candidate := range candidates {
		if windowHolds(free, candidate, requiredBlocks, requiredRooms) {
			return candidate, true, nil
		}
	}

	// 3. Полный перебор после последнего проверенного кандидата
	for s := candidates[len(candidates)-1] + 1; s < domain.BlocksPerDay && s+requiredBlocks <= domain.BlocksTotal; s++ {
		if err := ctx.Err(); err != nil {
			return 0, false, err
		}
		if windowHolds(free, s, requiredBlocks, requiredRooms) {
			return s, true, nil
		}
	}
	return 0, false, nil
}

// scanRun идет вперед от from, считая подряд идущие блоки с free >= threshold,
// и возвращает начало первой серии длиной requiredBlocks
func scanRun(free domain.RoomCounts, requiredBlocks, threshold, from int) (int, bool) {
	run := 0
	for i := from; i < domain.BlocksTotal; i++ {
		if free[i] < threshold {
			run = 0
			continue
		}
		run++
		if run == requiredBlocks {
			start := i - requiredBlocks + 1
			if start >= domain.BlocksPerDay {
				return 0, false
			}
			return start, true
		}
	}
	return 0, false
}

func windowHolds(free domain.RoomCounts, start, requiredBlocks, requiredRooms int) bool {
	if start+requiredBlocks > domain.BlocksTotal {
		return false
	}
	for i := start; i < start+requiredBlocks; i++ {
		if free[i] < requiredRooms {
			return false
		}
	}
	return true
}

// IsWindowFree сообщает, свободно ли requiredRooms комнат во всем окне
func IsWindowFree(free domain.RoomCounts, start, requiredBlocks, requiredRooms int) bool {
	if start < 0 || start >= domain.BlocksPerDay {
		return false
	}
	return windowHolds(free, start, requiredBlocks, requiredRooms)
}
