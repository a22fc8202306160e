package cachegate

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/cache/memorycache"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (*domain.CacheEntry, error) {
	return nil, errors.New("connection refused")
}

func (brokenStore) Set(context.Context, *domain.CacheEntry) error {
	return errors.New("connection refused")
}

var (
	t0 = time.Date(2025, 11, 28, 9, 0, 0, 0, time.UTC)
	t1 = t0.Add(time.Minute)
	t2 = t0.Add(2 * time.Minute)
)

func testKey() domain.CacheKey {
	return domain.CacheKey{
		Kind:  domain.CacheKindStaffFree,
		Date:  time.Date(2025, 11, 28, 0, 0, 0, 0, time.UTC),
		Scope: domain.ScopeAll,
	}
}

// table имитирует таблицу-источник: данные и версия меняются атомарно при коммите
type table struct {
	mu      sync.Mutex
	name    string
	version int64
	value   int
}

func (tb *table) source() Source {
	return Source{
		Table: tb.name,
		Version: func(context.Context) (int64, error) {
			tb.mu.Lock()
			defer tb.mu.Unlock()
			return tb.version, nil
		},
	}
}

func (tb *table) read() int {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.value
}

func (tb *table) commit(value int) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	tb.value = value
	tb.version++
}

// countingSnapshot считает открытые транзакции и помечает контекст
type countingSnapshot struct {
	calls int32
}

type snapshotKey struct{}

func (s *countingSnapshot) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	atomic.AddInt32(&s.calls, 1)
	return fn(context.WithValue(ctx, snapshotKey{}, true))
}

type payload struct {
	Value int `json:"value"`
}

func TestFetchMissingThenFresh(t *testing.T) {
	ctx := context.Background()
	clock := &fixedClock{now: t1}
	gate := NewGate(memorycache.NewStore(), nil, clock, nil, nopLogger{})

	tasks := &table{name: "tasks", version: 5}
	sources := []Source{tasks.source()}
	builds := 0
	build := func(context.Context) (payload, error) {
		builds++
		return payload{Value: builds}, nil
	}

	got, status, err := Fetch(ctx, gate, testKey(), sources, build)
	require.NoError(t, err)
	assert.Equal(t, StatusMissing, status)
	assert.Equal(t, 1, got.Value)

	got, status, err = Fetch(ctx, gate, testKey(), sources, build)
	require.NoError(t, err)
	assert.Equal(t, StatusFresh, status)
	assert.Equal(t, 1, got.Value)
	assert.Equal(t, 1, builds)
}

func TestFetchRebuildsWhenSourceChangedAfterComputation(t *testing.T) {
	ctx := context.Background()
	clock := &fixedClock{now: t0}
	gate := NewGate(memorycache.NewStore(), nil, clock, nil, nopLogger{})

	schedules := &table{name: "schedules", version: 1}
	tasks := &table{name: "tasks", version: 1, value: 1}
	sources := []Source{schedules.source(), tasks.source()}
	build := func(context.Context) (payload, error) {
		return payload{Value: tasks.read()}, nil
	}

	_, _, err := Fetch(ctx, gate, testKey(), sources, build)
	require.NoError(t, err)

	// Задача добавлена после расчета записи
	tasks.commit(2)
	clock.set(t2)

	got, status, err := Fetch(ctx, gate, testKey(), sources, build)
	require.NoError(t, err)
	assert.Equal(t, StatusStale, status)
	assert.Equal(t, 2, got.Value)

	assert.Equal(t, StatusFresh, gate.Check(ctx, testKey(), sources))
}

func TestFetchCommitDuringBuildMakesEntryStale(t *testing.T) {
	ctx := context.Background()
	clock := &fixedClock{now: t1}
	gate := NewGate(memorycache.NewStore(), nil, clock, nil, nopLogger{})

	tasks := &table{name: "tasks", version: 1, value: 1}
	sources := []Source{tasks.source()}

	// Писатель начал изменение в t0 и зафиксировал его в t2, уже после того как расчет прочитал данные в t1
	first := true
	build := func(context.Context) (payload, error) {
		value := tasks.read()
		if first {
			first = false
			tasks.commit(2)
		}
		return payload{Value: value}, nil
	}

	got, status, err := Fetch(ctx, gate, testKey(), sources, build)
	require.NoError(t, err)
	assert.Equal(t, StatusMissing, status)
	assert.Equal(t, 1, got.Value)

	// Часы не сдвигаются: актуальность не зависит от времени приложения
	assert.Equal(t, StatusStale, gate.Check(ctx, testKey(), sources))

	got, status, err = Fetch(ctx, gate, testKey(), sources, build)
	require.NoError(t, err)
	assert.Equal(t, StatusStale, status)
	assert.Equal(t, 2, got.Value)

	assert.Equal(t, StatusFresh, gate.Check(ctx, testKey(), sources))
}

func TestFetchReadsVersionsInsideBuildSnapshot(t *testing.T) {
	ctx := context.Background()
	snapshots := &countingSnapshot{}
	gate := NewGate(memorycache.NewStore(), snapshots, &fixedClock{now: t1}, nil, nopLogger{})

	var versionInSnapshot, buildInSnapshot bool
	sources := []Source{{
		Table: "tasks",
		Version: func(ctx context.Context) (int64, error) {
			if ctx.Value(snapshotKey{}) != nil {
				versionInSnapshot = true
			}
			return 1, nil
		},
	}}

	_, _, err := Fetch(ctx, gate, testKey(), sources, func(ctx context.Context) (payload, error) {
		buildInSnapshot = ctx.Value(snapshotKey{}) != nil
		return payload{Value: 1}, nil
	})
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&snapshots.calls))
	assert.True(t, versionInSnapshot)
	assert.True(t, buildInSnapshot)
}

func TestFetchEntryWithoutVersionIsStale(t *testing.T) {
	ctx := context.Background()
	store := memorycache.NewStore()
	gate := NewGate(store, nil, &fixedClock{now: t1}, nil, nopLogger{})

	require.NoError(t, store.Set(ctx, &domain.CacheEntry{
		Key:        testKey().String(),
		ComputedAt: t0,
		Payload:    []byte(`{"value":1}`),
	}))

	tasks := &table{name: "tasks"}
	assert.Equal(t, StatusStale, gate.Check(ctx, testKey(), []Source{tasks.source()}))
}

func TestFetchVersionErrorDuringBuildIsSourceUnavailable(t *testing.T) {
	ctx := context.Background()
	store := memorycache.NewStore()
	gate := NewGate(store, nil, &fixedClock{now: t1}, nil, nopLogger{})

	failing := []Source{{
		Table: "tasks",
		Version: func(context.Context) (int64, error) {
			return 0, errors.New("no metadata")
		},
	}}

	builds := 0
	_, _, err := Fetch(ctx, gate, testKey(), failing, func(context.Context) (payload, error) {
		builds++
		return payload{Value: 1}, nil
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBuild)
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
	assert.Equal(t, 0, builds)

	_, err = store.Get(ctx, testKey().String())
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestFetchSourceErrorIsStale(t *testing.T) {
	ctx := context.Background()
	gate := NewGate(memorycache.NewStore(), nil, &fixedClock{now: t1}, nil, nopLogger{})

	tasks := &table{name: "tasks", version: 1}
	_, _, err := Fetch(ctx, gate, testKey(), []Source{tasks.source()}, func(context.Context) (payload, error) {
		return payload{Value: 1}, nil
	})
	require.NoError(t, err)

	// Версия недоступна при обеих проверках записи и читается при пересчете
	var lookups int32
	flaky := []Source{{
		Table: "tasks",
		Version: func(context.Context) (int64, error) {
			if atomic.AddInt32(&lookups, 1) <= 2 {
				return 0, errors.New("no metadata")
			}
			return 1, nil
		},
	}}

	builds := 0
	got, status, err := Fetch(ctx, gate, testKey(), flaky, func(context.Context) (payload, error) {
		builds++
		return payload{Value: 2}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, StatusStale, status)
	assert.Equal(t, 2, got.Value)
	assert.Equal(t, 1, builds)
}

func TestFetchBuildErrorStoresNothing(t *testing.T) {
	ctx := context.Background()
	store := memorycache.NewStore()
	gate := NewGate(store, nil, &fixedClock{now: t1}, nil, nopLogger{})

	tasks := &table{name: "tasks", version: 1}
	sources := []Source{tasks.source()}
	_, status, err := Fetch(ctx, gate, testKey(), sources, func(context.Context) (payload, error) {
		return payload{}, domain.ErrSourceUnavailable
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBuild)
	assert.Equal(t, StatusMissing, status)

	_, err = store.Get(ctx, testKey().String())
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestFetchStoreFailureStillServesBuiltValue(t *testing.T) {
	ctx := context.Background()
	gate := NewGate(brokenStore{}, nil, &fixedClock{now: t1}, nil, nopLogger{})

	tasks := &table{name: "tasks", version: 1}
	got, status, err := Fetch(ctx, gate, testKey(), []Source{tasks.source()}, func(context.Context) (payload, error) {
		return payload{Value: 7}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, StatusMissing, status)
	assert.Equal(t, 7, got.Value)
}

func TestFetchConcurrentMissBuildsOnce(t *testing.T) {
	ctx := context.Background()
	gate := NewGate(memorycache.NewStore(), nil, &fixedClock{now: t1}, nil, nopLogger{})

	tasks := &table{name: "tasks", version: 1}
	sources := []Source{tasks.source()}

	var builds int32
	release := make(chan struct{})
	build := func(context.Context) (payload, error) {
		atomic.AddInt32(&builds, 1)
		<-release
		return payload{Value: 42}, nil
	}

	const callers = 20
	var wg sync.WaitGroup
	results := make([]int, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got, _, err := Fetch(ctx, gate, testKey(), sources, build)
			results[i] = got.Value
			errs[i] = err
		}(i)
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&builds))
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, 42, results[i])
	}
}

func TestFetchCallerCancellationDoesNotAbortBuild(t *testing.T) {
	store := memorycache.NewStore()
	gate := NewGate(store, nil, &fixedClock{now: t1}, nil, nopLogger{})

	tasks := &table{name: "tasks", version: 1}
	sources := []Source{tasks.source()}
	release := make(chan struct{})
	done := make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		defer close(done)
		_, _, err := Fetch(ctx, gate, testKey(), sources, func(context.Context) (payload, error) {
			<-release
			return payload{Value: 3}, nil
		})
		assert.ErrorIs(t, err, context.Canceled)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()
	<-done
	close(release)

	require.Eventually(t, func() bool {
		_, err := store.Get(context.Background(), testKey().String())
		return err == nil
	}, time.Second, 10*time.Millisecond)
}
