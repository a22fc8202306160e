package domain

import (
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// BlockRange is a half-open range of block indices [Start, End)
type BlockRange struct {
	Start int
	End   int
}

// Len returns the number of blocks in the range
func (r BlockRange) Len() int {
	return r.End - r.Start
}

// TimeToBlock converts a clock time to its block index (floor to 5 minutes)
func TimeToBlock(t types.TimeString) (int, error) {
	if err := t.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return t.Minutes() / BlockMinutes, nil
}

// EndTimeToBlock converts a task end time to an exclusive block index, rounding up
// to the next 5-minute boundary. 00:00 as an end time means the end of the day
// (block 288), not block 0.
func EndTimeToBlock(t types.TimeString) (int, error) {
	if err := t.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	block := (t.Minutes() + BlockMinutes - 1) / BlockMinutes
	if block == 0 {
		return BlocksPerDay, nil
	}
	return block, nil
}

// BlockToTime converts a block index back to a clock time.
// Overflow blocks (288..293) map onto the first minutes of the next day.
func BlockToTime(index int) (types.TimeString, error) {
	if index < 0 || index >= BlocksTotal {
		return "", fmt.Errorf("%w: block %d", ErrOutOfRange, index)
	}
	return types.NewTimeStringFromMinutes((index % BlocksPerDay) * BlockMinutes)
}

// RequiredBlocks returns ceil((duration + buffer) / 5)
func RequiredBlocks(durationMinutes int) (int, error) {
	if durationMinutes <= 0 {
		return 0, fmt.Errorf("%w: duration must be positive, got %d", ErrValidation, durationMinutes)
	}
	effective := durationMinutes + BufferMinutes
	return (effective + BlockMinutes - 1) / BlockMinutes, nil
}

// CheckWindow verifies that [start, start+required) fits into the block model
func CheckWindow(start, required int) error {
	if start < 0 || start >= BlocksPerDay {
		return fmt.Errorf("%w: start block %d", ErrOutOfRange, start)
	}
	if required <= 0 || start+required > BlocksTotal {
		return fmt.Errorf("%w: window [%d, %d)", ErrOutOfRange, start, start+required)
	}
	return nil
}

// OccupiedRanges returns the blocks a task occupies: from its start through its end
// plus the trailing buffer. When the buffered end does not come after the start,
// the task crosses midnight and the range is split into [start, 288) and [0, end+buffer).
func OccupiedRanges(start, end types.TimeString) ([]BlockRange, error) {
	startBlock, err := TimeToBlock(start)
	if err != nil {
		return nil, err
	}
	endBlock, err := EndTimeToBlock(end)
	if err != nil {
		return nil, err
	}

	bufferedEnd := endBlock + BufferBlocks
	if bufferedEnd <= startBlock {
		return []BlockRange{
			{Start: startBlock, End: BlocksPerDay},
			{Start: 0, End: bufferedEnd},
		}, nil
	}

	return []BlockRange{{Start: startBlock, End: bufferedEnd}}, nil
}

// BlockEndToTime converts an exclusive end block to a clock time.
// The end of the day (288) renders as 00:00, overflow ends as the next day's minutes.
func BlockEndToTime(end int) (types.TimeString, error) {
	if end <= 0 || end > BlocksTotal {
		return "", fmt.Errorf("%w: end block %d", ErrOutOfRange, end)
	}
	return types.NewTimeStringFromMinutes((end % BlocksPerDay) * BlockMinutes)
}
