package slotfinder

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

func block(t *testing.T, s string) int {
	t.Helper()
	b, err := domain.TimeToBlock(types.TimeString(s))
	require.NoError(t, err)
	return b
}

func fill(free *domain.RoomCounts, from, to, rooms int) {
	for i := from; i < to; i++ {
		free[i] = rooms
	}
}

// bruteForce минимальный старт перебором всех блоков
func bruteForce(free domain.RoomCounts, requiredBlocks, requiredRooms, earliest int) (int, bool) {
	for s := earliest; s < domain.BlocksPerDay; s++ {
		if windowHolds(free, s, requiredBlocks, requiredRooms) {
			return s, true
		}
	}
	return 0, false
}

func TestFindEarliestRejectsWindowWithSingleFreeRoom(t *testing.T) {
	var free domain.RoomCounts
	fill(&free, 0, domain.BlocksTotal, 3)
	fill(&free, block(t, "14:00"), block(t, "14:30"), 2)
	fill(&free, block(t, "14:30"), block(t, "15:45"), 1)

	required, err := domain.RequiredBlocks(60)
	require.NoError(t, err)

	start, ok, err := FindEarliest(context.Background(), free, required, 2, block(t, "14:00"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, block(t, "15:45"), start)
}

func TestFindEarliestSingleRoom(t *testing.T) {
	var free domain.RoomCounts
	fill(&free, block(t, "10:00"), block(t, "11:00"), 1)
	fill(&free, block(t, "12:00"), block(t, "14:00"), 1)

	start, ok, err := FindEarliest(context.Background(), free, 15, 1, block(t, "09:00"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, block(t, "12:00"), start)

	_, ok, err = FindEarliest(context.Background(), free, 30, 1, block(t, "09:00"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFindEarliestMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for iter := 0; iter < 500; iter++ {
		var free domain.RoomCounts
		for i := range free {
			free[i] = rng.Intn(4)
		}
		// Длинные серии, чтобы окна чаще находились
		for k := 0; k < 3; k++ {
			from := rng.Intn(domain.BlocksPerDay)
			fill(&free, from, min(from+20+rng.Intn(30), domain.BlocksTotal), 1+rng.Intn(3))
		}

		required := 1 + rng.Intn(24)
		rooms := 1 + rng.Intn(3)
		earliest := rng.Intn(domain.BlocksPerDay)

		want, wantOK := bruteForce(free, required, rooms, earliest)
		got, gotOK, err := FindEarliest(context.Background(), free, required, rooms, earliest)
		require.NoError(t, err)
		require.Equal(t, wantOK, gotOK, "iteration %d", iter)
		if wantOK {
			require.Equal(t, want, got, "iteration %d", iter)
		}
	}
}

func TestFindEarliestWindowMayUseOverflow(t *testing.T) {
	var free domain.RoomCounts
	fill(&free, block(t, "23:30"), domain.BlocksTotal, 2)

	required, err := domain.RequiredBlocks(30)
	require.NoError(t, err)

	start, ok, err := FindEarliest(context.Background(), free, required, 2, block(t, "23:00"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, block(t, "23:30"), start)
}

func TestFindEarliestValidation(t *testing.T) {
	var free domain.RoomCounts

	_, _, err := FindEarliest(context.Background(), free, 0, 1, 0)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, _, err = FindEarliest(context.Background(), free, 10, 0, 0)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, _, err = FindEarliest(context.Background(), free, 10, 1, domain.BlocksPerDay)
	assert.ErrorIs(t, err, domain.ErrOutOfRange)
}

func TestIsWindowFree(t *testing.T) {
	var free domain.RoomCounts
	fill(&free, 10, 20, 2)

	assert.True(t, IsWindowFree(free, 10, 10, 2))
	assert.False(t, IsWindowFree(free, 10, 11, 2))
	assert.False(t, IsWindowFree(free, 10, 10, 3))
	assert.False(t, IsWindowFree(free, domain.BlocksPerDay, 1, 1))
}
