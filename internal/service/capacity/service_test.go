package capacity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
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

type mockStoreRepo struct{ mock.Mock }

func (m *mockStoreRepo) GetAll(ctx context.Context) ([]domain.Store, error) {
	args := m.Called(ctx)
	stores, _ := args.Get(0).([]domain.Store)
	return stores, args.Error(1)
}

func (m *mockStoreRepo) Version(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockTaskRepo struct{ mock.Mock }

func (m *mockTaskRepo) GetByFilter(ctx context.Context, filter task.Filter) ([]domain.Task, error) {
	args := m.Called(ctx, filter)
	tasks, _ := args.Get(0).([]domain.Task)
	return tasks, args.Error(1)
}

func (m *mockTaskRepo) Version(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestServiceGetStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 11, 27, 12, 0, 0, 0, time.UTC)

	stores := &mockStoreRepo{}
	tasks := &mockTaskRepo{}
	stores.On("GetAll", mock.Anything).Return([]domain.Store{{ID: 1, Name: "Центральный", Rooms: 3}}, nil).Once()
	stores.On("Version", mock.Anything).Return(int64(1), nil)
	tasks.On("GetByFilter", mock.Anything, task.Filter{Date: testDate}).
		Return([]domain.Task{{ID: 1, StoreID: 1, StartTime: "14:00", EndTime: "15:30"}}, nil).Once()
	tasks.On("Version", mock.Anything).Return(int64(1), nil)

	gate := cachegate.NewGate(memorycache.NewStore(), passthroughTx{}, fakeClock{now: now}, nil, nopLogger{})
	svc := NewService(stores, tasks, passthroughTx{}, gate, nopLogger{})

	got, err := svc.GetStore(ctx, 1, testDate)
	require.NoError(t, err)
	assert.Equal(t, "Центральный", got.StoreName)
	assert.Equal(t, 3, got.Capacity)
	free := got.Free()
	assert.Equal(t, 2, free[block(t, "14:00")])

	// Второй запрос обслуживается из кэша
	_, err = svc.GetStore(ctx, 1, testDate)
	require.NoError(t, err)

	_, err = svc.GetStore(ctx, 42, testDate)
	assert.ErrorIs(t, err, ErrStoreNotFound)

	stores.AssertExpectations(t)
	tasks.AssertExpectations(t)
}

func TestServiceGetAllSourceError(t *testing.T) {
	now := time.Date(2025, 11, 27, 12, 0, 0, 0, time.UTC)

	stores := &mockStoreRepo{}
	tasks := &mockTaskRepo{}
	stores.On("GetAll", mock.Anything).Return(nil, errors.New("connection refused"))
	stores.On("Version", mock.Anything).Return(int64(1), nil)
	tasks.On("Version", mock.Anything).Return(int64(1), nil)

	gate := cachegate.NewGate(memorycache.NewStore(), passthroughTx{}, fakeClock{now: now}, nil, nopLogger{})
	svc := NewService(stores, tasks, passthroughTx{}, gate, nopLogger{})

	_, err := svc.GetAll(context.Background(), testDate)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
	tasks.AssertNotCalled(t, "GetByFilter", mock.Anything, mock.Anything)
}

func TestServiceGetAllInvalidTaskIsInternal(t *testing.T) {
	now := time.Date(2025, 11, 27, 12, 0, 0, 0, time.UTC)

	stores := &mockStoreRepo{}
	tasks := &mockTaskRepo{}
	stores.On("GetAll", mock.Anything).Return([]domain.Store{{ID: 1, Name: "Центральный", Rooms: 3}}, nil)
	stores.On("Version", mock.Anything).Return(int64(1), nil)
	tasks.On("GetByFilter", mock.Anything, task.Filter{Date: testDate}).
		Return([]domain.Task{{ID: 9, StoreID: 1, StartTime: "aa:bb", EndTime: "10:00"}}, nil)
	tasks.On("Version", mock.Anything).Return(int64(1), nil)

	gate := cachegate.NewGate(memorycache.NewStore(), passthroughTx{}, fakeClock{now: now}, nil, nopLogger{})
	svc := NewService(stores, tasks, passthroughTx{}, gate, nopLogger{})

	_, err := svc.GetAll(context.Background(), testDate)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, ErrInvalidSource)
	assert.NotErrorIs(t, err, domain.ErrSourceUnavailable)
}
