package schedule

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/cache/memorycache"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/task"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/cachegate"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type passthroughTx struct{}

func (passthroughTx) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeClock struct{ now time.Time }

func (c fakeClock) Now() time.Time { return c.now }

// fakeSources реализует все три репозитория с общей версией
type fakeSources struct {
	mu        sync.Mutex
	staffs    []domain.Staff
	slots     []domain.RosterSlot
	tasks     []domain.Task
	version   int64
	taskErr   error
	taskReads int
}

func (f *fakeSources) GetAll(context.Context) ([]domain.Staff, error) {
	return f.staffs, nil
}

func (f *fakeSources) GetByDate(context.Context, time.Time) ([]domain.RosterSlot, error) {
	return f.slots, nil
}

func (f *fakeSources) GetByFilter(_ context.Context, _ task.Filter) ([]domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.taskReads++
	return f.tasks, f.taskErr
}

func (f *fakeSources) Version(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.version, nil
}

func newTestService(t *testing.T, src *fakeSources, now time.Time) *Service {
	t.Helper()
	gate := cachegate.NewGate(memorycache.NewStore(), passthroughTx{}, fakeClock{now: now}, nil, nopLogger{})
	return NewService(src, src, src, passthroughTx{}, gate, nopLogger{})
}

func TestServiceGetAllServesFreshEntryFromCache(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 11, 27, 12, 0, 0, 0, time.UTC)
	src := &fakeSources{
		staffs:   []domain.Staff{{Name: "A", Enabled: true}},
		slots:    rosterSlots(t, "A", "10:00", "22:00"),
		version:  1,
	}
	svc := newTestService(t, src, now)

	first, err := svc.GetAll(ctx, testDate)
	require.NoError(t, err)
	a := first["A"]
	assert.True(t, a.IsFreeWindow(block(t, "14:00"), 21))

	_, err = svc.GetAll(ctx, testDate)
	require.NoError(t, err)
	assert.Equal(t, 1, src.taskReads)
}

func TestServiceGetAllRebuildsStaleEntry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 11, 27, 12, 0, 0, 0, time.UTC)
	src := &fakeSources{
		staffs:   []domain.Staff{{Name: "A", Enabled: true}},
		slots:    rosterSlots(t, "A", "10:00", "22:00"),
		version:  1,
	}
	store := memorycache.NewStore()
	clock := &movingClock{now: now}
	svc := NewService(src, src, src, passthroughTx{}, cachegate.NewGate(store, passthroughTx{}, clock, nil, nopLogger{}), nopLogger{})

	_, err := svc.GetAll(ctx, testDate)
	require.NoError(t, err)

	src.mu.Lock()
	src.tasks = []domain.Task{{ID: 1, StaffName: "A", StoreID: 1, StartTime: "14:00", EndTime: "15:30", Minutes: 90}}
	src.version++
	src.mu.Unlock()
	clock.set(now.Add(time.Minute))

	got, err := svc.GetAll(ctx, testDate)
	require.NoError(t, err)
	a := got["A"]
	assert.False(t, a.IsFreeWindow(block(t, "14:00"), 21))
	assert.Equal(t, 2, src.taskReads)
}

func TestServiceGetAllSourceError(t *testing.T) {
	now := time.Date(2025, 11, 27, 12, 0, 0, 0, time.UTC)
	src := &fakeSources{
		staffs:   []domain.Staff{{Name: "A", Enabled: true}},
		version:  1,
		taskErr:  errors.New("connection reset"),
	}
	svc := newTestService(t, src, now)

	_, err := svc.GetAll(context.Background(), testDate)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
}

func TestServiceGetAllInvalidRecordIsInternal(t *testing.T) {
	now := time.Date(2025, 11, 27, 12, 0, 0, 0, time.UTC)
	src := &fakeSources{
		staffs:  []domain.Staff{{Name: "A", Enabled: true}},
		slots:   rosterSlots(t, "A", "10:00", "22:00"),
		tasks:   []domain.Task{{ID: 7, StaffName: "A", StoreID: 1, StartTime: "25:00", EndTime: "26:00"}},
		version: 1,
	}
	svc := newTestService(t, src, now)

	_, err := svc.GetAll(context.Background(), testDate)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, ErrInvalidSource)
	assert.NotErrorIs(t, err, domain.ErrSourceUnavailable)
}

func TestServiceGetStaff(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 11, 27, 12, 0, 0, 0, time.UTC)
	src := &fakeSources{
		staffs:   []domain.Staff{{Name: "A", Enabled: true}},
		slots:    rosterSlots(t, "A", "10:00", "12:00"),
		version:  1,
	}
	svc := newTestService(t, src, now)

	got, err := svc.GetStaff(ctx, "A", testDate)
	require.NoError(t, err)
	assert.Equal(t, "A", got.StaffName)

	_, err = svc.GetStaff(ctx, "Z", testDate)
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

type movingClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *movingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *movingClock) set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
