package find_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/distribution"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/matrix"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

type mockCapacity struct{ mock.Mock }

func (m *mockCapacity) GetAll(ctx context.Context, date time.Time) (map[int64]domain.StoreDailyCapacity, error) {
	args := m.Called(ctx, date)
	result, _ := args.Get(0).(map[int64]domain.StoreDailyCapacity)
	return result, args.Error(1)
}

type mockMatrix struct{ mock.Mock }

func (m *mockMatrix) Evaluate(ctx context.Context, req *matrix.Request) (*matrix.Result, error) {
	args := m.Called(ctx, req)
	result, _ := args.Get(0).(*matrix.Result)
	return result, args.Error(1)
}

type mockDistribution struct{ mock.Mock }

func (m *mockDistribution) Resolve(ctx context.Context, date time.Time) (distribution.Assignment, error) {
	args := m.Called(ctx, date)
	result, _ := args.Get(0).(distribution.Assignment)
	return result, args.Error(1)
}

type mockExclusion struct{ mock.Mock }

func (m *mockExclusion) GetExclusion(ctx context.Context, customerID string) (*domain.Exclusion, error) {
	args := m.Called(ctx, customerID)
	result, _ := args.Get(0).(*domain.Exclusion)
	return result, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

var testDate = time.Date(2025, 11, 28, 0, 0, 0, 0, time.UTC)

func block(t *testing.T, s string) int {
	t.Helper()
	b, err := domain.TimeToBlock(types.TimeString(s))
	require.NoError(t, err)
	return b
}

// busyStores филиал 1 на 3 комнаты: 1 занята 14:00-14:30, 2 заняты 14:30-15:45; филиал 2 свободен
func busyStores(t *testing.T) map[int64]domain.StoreDailyCapacity {
	t.Helper()
	central := domain.StoreDailyCapacity{StoreID: 1, StoreName: "Центральный", Date: testDate, Capacity: 3}
	for i := block(t, "14:00"); i < block(t, "14:30"); i++ {
		central.Occupied[i] = 1
	}
	for i := block(t, "14:30"); i < block(t, "15:45"); i++ {
		central.Occupied[i] = 2
	}
	north := domain.StoreDailyCapacity{StoreID: 2, StoreName: "Северный", Date: testDate, Capacity: 2}
	return map[int64]domain.StoreDailyCapacity{1: central, 2: north}
}

type fixture struct {
	capacity     *mockCapacity
	matrix       *mockMatrix
	distribution *mockDistribution
	exclusion    *mockExclusion
	uc           *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		capacity:     &mockCapacity{},
		matrix:       &mockMatrix{},
		distribution: &mockDistribution{},
		exclusion:    &mockExclusion{},
	}
	f.uc = NewUseCase(f.capacity, f.matrix, f.distribution, f.exclusion, nil, nopLogger{}, Limits{})
	f.uc.timeProvider = fixedTime{now: time.Date(2025, 11, 28, 9, 0, 0, 0, time.UTC)}
	return f
}

func validRequest() *Request {
	return &Request{
		StoreID:         1,
		StaffNames:      []string{"A", "B", "C", "D"},
		Date:            testDate,
		StartTime:       "14:00",
		DurationMinutes: 60,
		PartySize:       2,
	}
}

func TestExecuteMovesToEarliestRoomSlotAndSplitsStaff(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.capacity.On("GetAll", mock.Anything, testDate).Return(busyStores(t), nil)
	f.matrix.On("Evaluate", mock.Anything, mock.MatchedBy(func(req *matrix.Request) bool {
		return req.StartBlock == block(t, "15:45") && req.RequiredBlocks == 15 && req.PartySize == 2
	})).Return(&matrix.Result{
		Available: []string{"A", "B", "C"},
		Unavailable: []matrix.StaffVerdict{
			{StaffName: "D", Verdict: matrix.VerdictUnavailable, AlternativeBlock: ptr.Ptr(block(t, "17:00"))},
		},
		Sufficient: true,
	}, nil)
	f.distribution.On("Resolve", mock.Anything, testDate).Return(distribution.Assignment{
		"A": {1}, "B": {1, 2}, "C": {2}, "D": {1},
	}, nil)

	resp, err := f.uc.Execute(ctx, validRequest())
	require.NoError(t, err)

	rec := resp.Recommendation
	assert.True(t, rec.Feasible)
	require.NotNil(t, rec.EarliestTime)
	assert.Equal(t, types.TimeString("15:45"), *rec.EarliestTime)
	assert.Equal(t, types.TimeString("14:00"), rec.RequestedTime)
	assert.Equal(t, []string{"A", "B"}, rec.AvailableStaff)

	require.Len(t, rec.StaffElsewhere, 1)
	assert.Equal(t, "C", rec.StaffElsewhere[0].Name)
	assert.Equal(t, []string{"Северный"}, rec.StaffElsewhere[0].StoreNames)
	assert.Equal(t, "available at Северный", rec.StaffElsewhere[0].Note)
	assert.Equal(t, types.TimeString("15:45"), *rec.StaffElsewhere[0].AvailableTime)

	require.Len(t, rec.UnavailableStaff, 1)
	assert.Equal(t, "D", rec.UnavailableStaff[0].Name)
	assert.Equal(t, types.TimeString("17:00"), *rec.UnavailableStaff[0].AlternativeTime)

	assert.Equal(t, domain.RoomInfo{StoreID: 1, StoreName: "Центральный", Capacity: 3, FreeRooms: 3}, rec.Room)

	// Без X-Customer-ID черный список не читается
	f.exclusion.AssertNotCalled(t, "GetExclusion", mock.Anything, mock.Anything)
}

func TestExecuteNoRoomSlotIsInfeasibleNotError(t *testing.T) {
	f := newFixture()

	stores := busyStores(t)
	full := stores[1]
	for i := range full.Occupied {
		full.Occupied[i] = 3
	}
	stores[1] = full
	f.capacity.On("GetAll", mock.Anything, testDate).Return(stores, nil)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.False(t, resp.Recommendation.Feasible)
	assert.Nil(t, resp.Recommendation.EarliestTime)
	assert.Empty(t, resp.Recommendation.AvailableStaff)
	f.matrix.AssertNotCalled(t, "Evaluate", mock.Anything, mock.Anything)
}

func TestExecuteAppliesBlacklistToAvailableOnly(t *testing.T) {
	f := newFixture()

	f.capacity.On("GetAll", mock.Anything, testDate).Return(busyStores(t), nil)
	f.matrix.On("Evaluate", mock.Anything, mock.Anything).Return(&matrix.Result{
		Available:   []string{"A", "B", "C"},
		Unavailable: []matrix.StaffVerdict{{StaffName: "D", Verdict: matrix.VerdictUnavailable}},
	}, nil)
	f.distribution.On("Resolve", mock.Anything, testDate).Return(distribution.Assignment{"A": {1}, "B": {1}, "C": {2}, "D": {1}}, nil)
	f.exclusion.On("GetExclusion", mock.Anything, "customer-1").
		Return(&domain.Exclusion{StaffNames: []string{"A", "C", "D"}}, nil)

	req := validRequest()
	req.CustomerID = "customer-1"
	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	rec := resp.Recommendation
	assert.Equal(t, []string{"B"}, rec.AvailableStaff)
	assert.Empty(t, rec.StaffElsewhere)
	require.Len(t, rec.UnavailableStaff, 1)
	assert.Equal(t, "D", rec.UnavailableStaff[0].Name)
	assert.False(t, rec.Feasible)
}

func TestExecuteSuperBlacklistExcludesEveryone(t *testing.T) {
	f := newFixture()

	f.capacity.On("GetAll", mock.Anything, testDate).Return(busyStores(t), nil)
	f.matrix.On("Evaluate", mock.Anything, mock.Anything).Return(&matrix.Result{Available: []string{"A", "B"}}, nil)
	f.distribution.On("Resolve", mock.Anything, testDate).Return(distribution.Assignment{"A": {1}, "B": {1}}, nil)
	f.exclusion.On("GetExclusion", mock.Anything, "customer-2").Return(&domain.Exclusion{All: true}, nil)

	req := validRequest()
	req.CustomerID = "customer-2"
	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.False(t, resp.Recommendation.Feasible)
	assert.Empty(t, resp.Recommendation.AvailableStaff)
}

func TestExecuteValidation(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(r *Request)
		wantErr error
	}{
		{"zero party", func(r *Request) { r.PartySize = 0 }, ErrInvalidInput},
		{"party above limit", func(r *Request) { r.PartySize = domain.DefaultMaxPartySize + 1 }, ErrInvalidInput},
		{"zero duration", func(r *Request) { r.DurationMinutes = 0 }, ErrInvalidInput},
		{"duration above limit", func(r *Request) { r.DurationMinutes = domain.DefaultMaxDurationMinutes + 1 }, ErrInvalidInput},
		{"malformed time", func(r *Request) { r.StartTime = "25:61" }, ErrInvalidInput},
		{"missing store", func(r *Request) { r.StoreID = 0 }, ErrInvalidInput},
		{"empty staff name", func(r *Request) { r.StaffNames = []string{" "} }, ErrInvalidInput},
		{"window past overflow", func(r *Request) { r.StartTime = "23:30"; r.DurationMinutes = 60 }, ErrInvalidInput},
		{"time in past", func(r *Request) { r.StartTime = "08:00" }, ErrTimeInPast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := validRequest()
			tt.modify(req)

			_, err := f.uc.Execute(context.Background(), req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, domain.ErrValidation)
			f.capacity.AssertNotCalled(t, "GetAll", mock.Anything, mock.Anything)
		})
	}
}

func TestExecuteStoreNotFound(t *testing.T) {
	f := newFixture()
	f.capacity.On("GetAll", mock.Anything, testDate).Return(busyStores(t), nil)

	req := validRequest()
	req.StoreID = 77
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrStoreNotFound)
}

func TestExecuteSourceUnavailable(t *testing.T) {
	f := newFixture()
	f.capacity.On("GetAll", mock.Anything, testDate).Return(nil, domain.ErrSourceUnavailable)

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceUnavailable)
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
}

func TestExecuteBlacklistFailureIsSourceUnavailable(t *testing.T) {
	f := newFixture()

	f.capacity.On("GetAll", mock.Anything, testDate).Return(busyStores(t), nil)
	f.matrix.On("Evaluate", mock.Anything, mock.Anything).Return(&matrix.Result{Available: []string{"A", "B"}}, nil)
	f.distribution.On("Resolve", mock.Anything, testDate).Return(distribution.Assignment{"A": {1}, "B": {1}}, nil)
	f.exclusion.On("GetExclusion", mock.Anything, "customer-3").Return(nil, errors.New("connection reset"))

	req := validRequest()
	req.CustomerID = "customer-3"
	_, err := f.uc.Execute(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

type fakeSchedule struct {
	data map[string]domain.StaffDailyAvailability
}

func (f *fakeSchedule) GetAll(context.Context, time.Time) (map[string]domain.StaffDailyAvailability, error) {
	return f.data, nil
}

type fakeStaffDirectory struct {
	staffs []domain.Staff
}

func (f *fakeStaffDirectory) GetAll(context.Context) ([]domain.Staff, error) {
	return f.staffs, nil
}

func TestExecuteAnyStaffFollowsForcedLocations(t *testing.T) {
	ctx := context.Background()

	onShift := func(name string) domain.StaffDailyAvailability {
		a := domain.StaffDailyAvailability{StaffName: name, Date: testDate}
		a.Roster.SetRange(domain.BlockRange{Start: block(t, "10:00"), End: block(t, "22:00")})
		return a
	}
	schedule := &fakeSchedule{data: map[string]domain.StaffDailyAvailability{
		"A": onShift("A"),
		"B": onShift("B"),
	}}
	staffs := []domain.Staff{
		{Name: "A", DefaultStoreIDs: []int64{1}, Enabled: true},
		{Name: "B", DefaultStoreIDs: []int64{2}, Enabled: true},
	}
	// На эту дату A переведен в Северный, B в Центральный
	forced := []domain.ForcedLocation{
		{StaffName: "A", StoreIDs: []int64{2}},
		{StaffName: "B", StoreIDs: []int64{1}},
	}

	capacity := &mockCapacity{}
	capacity.On("GetAll", mock.Anything, testDate).Return(busyStores(t), nil)
	dist := &mockDistribution{}
	dist.On("Resolve", mock.Anything, testDate).Return(distribution.Resolve(staffs, nil, forced, nil), nil)

	staffMatrix := matrix.NewMatrix(schedule, &fakeStaffDirectory{staffs: staffs}, dist, nil, nopLogger{}, 2)
	uc := NewUseCase(capacity, staffMatrix, dist, nil, nil, nopLogger{}, Limits{})
	uc.timeProvider = fixedTime{now: time.Date(2025, 11, 28, 9, 0, 0, 0, time.UTC)}

	resp, err := uc.Execute(ctx, &Request{
		StoreID:         1,
		Date:            testDate,
		StartTime:       "14:00",
		DurationMinutes: 60,
		PartySize:       1,
	})
	require.NoError(t, err)

	rec := resp.Recommendation
	assert.True(t, rec.Feasible)
	assert.Equal(t, []string{"B"}, rec.AvailableStaff)
	assert.Empty(t, rec.StaffElsewhere)
	assert.Empty(t, rec.UnavailableStaff)
}
