package rotation

import (
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/GriffinCanCode/profile-engine/internal/domain/events"
	"github.com/GriffinCanCode/profile-engine/internal/domain/profile"
	"github.com/GriffinCanCode/profile-engine/internal/domain/stats"
	"github.com/GriffinCanCode/profile-engine/internal/domain/useragent"
	"github.com/GriffinCanCode/profile-engine/internal/shared/types"
)

const (
	uaDesktop = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	uaMobile  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_6 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.6 Mobile/15E148 Safari/604.1"
)

type fixture struct {
	store     *profile.Store
	registry  *useragent.Registry
	stats     *stats.Aggregator
	sub       *events.Subscription
	scheduler *Scheduler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	codec := useragent.NewCodec(0)
	registry, err := useragent.NewRegistry(codec, []types.Preset{
		{ID: "UA-Chrome-Desktop", Value: uaDesktop, Category: types.CategoryDesktop},
		{ID: "UA-Safari-Mobile", Value: uaMobile, Category: types.CategoryMobile},
	}, nil)
	require.NoError(t, err)

	agg := stats.NewAggregator()
	bus := events.NewBus(nil)
	sub := bus.Subscribe(4096)
	store := profile.NewStore(codec, agg, bus, nil)
	scheduler := NewScheduler(registry, codec, store, nil).
		WithRecorder(agg).
		WithPublisher(bus)

	t.Cleanup(func() {
		scheduler.StopAll()
		sub.Close()
	})
	return &fixture{store: store, registry: registry, stats: agg, sub: sub, scheduler: scheduler}
}

func TestStartValidation(t *testing.T) {
	f := newFixture(t)
	p := f.store.Create("p1", "")

	_, err := f.scheduler.Start(p.ID, 0, "")
	assert.ErrorIs(t, err, types.ErrInvalidInterval)
	_, err = f.scheduler.Start(p.ID, -5, "")
	assert.ErrorIs(t, err, types.ErrInvalidInterval)
	_, err = f.scheduler.Start("prof_missing", 1000, "")
	assert.ErrorIs(t, err, types.ErrNotFound)

	assert.Equal(t, 0, f.scheduler.Count())
}

func TestHugeIntervalDoesNotTick(t *testing.T) {
	f := newFixture(t)
	p := f.store.Create("p1", "")

	for _, intervalMs := range []int64{math.MaxInt64/1000 + 1, math.MaxInt64} {
		rs, err := f.scheduler.Start(p.ID, intervalMs, "")
		require.NoError(t, err)
		assert.Equal(t, intervalMs, rs.IntervalMs)

		time.Sleep(50 * time.Millisecond)

		status, ok := f.scheduler.Status(p.ID)
		require.True(t, ok)
		assert.Zero(t, status.Ticks, "interval %d", intervalMs)
	}

	f.scheduler.Stop(p.ID)
	assert.Zero(t, f.stats.Snapshot().RotationTickCount)
	got, err := f.store.Get(p.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CurrentUserAgent)
}

func TestReplacedRotationTicksStayWithTheirGeneration(t *testing.T) {
	f := newFixture(t)
	p := f.store.Create("p1", "")

	first, err := f.scheduler.Start(p.ID, 1, "")
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		status, _ := f.scheduler.Status(p.ID)
		return status.Ticks >= 3
	}, 2*time.Second, time.Millisecond)

	second, err := f.scheduler.Start(p.ID, 60000, "")
	require.NoError(t, err)
	assert.Greater(t, second.Generation, first.Generation)

	got, err := f.store.Get(p.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Rotation)
	assert.Equal(t, second.Generation, got.Rotation.Generation)
	assert.Zero(t, got.Rotation.Ticks)
}

func TestRotationTicksApplyPresets(t *testing.T) {
	f := newFixture(t)
	p := f.store.Create("p1", "")

	rs, err := f.scheduler.Start(p.ID, 5, types.CategoryMobile)
	require.NoError(t, err)
	assert.True(t, rs.Active)
	assert.Equal(t, int64(5), rs.IntervalMs)

	require.Eventually(t, func() bool {
		status, ok := f.scheduler.Status(p.ID)
		return ok && status.Ticks >= 3
	}, 2*time.Second, 5*time.Millisecond)

	got, err := f.store.Get(p.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CurrentUserAgent)
	assert.Equal(t, uaMobile, *got.CurrentUserAgent)
	require.NotNil(t, got.Rotation)
	assert.GreaterOrEqual(t, got.Rotation.Ticks, uint64(3))
	assert.GreaterOrEqual(t, f.stats.Snapshot().RotationTickCount, uint64(3))
}

func TestStartReplacesExisting(t *testing.T) {
	f := newFixture(t)
	p := f.store.Create("p1", "")

	_, err := f.scheduler.Start(p.ID, 10, "")
	require.NoError(t, err)
	_, err = f.scheduler.Start(p.ID, int64(time.Hour/time.Millisecond), "")
	require.NoError(t, err)

	ticksAfterReplace := f.stats.Snapshot().RotationTickCount
	time.Sleep(60 * time.Millisecond)

	// The 10ms timer is gone; the hour-long one has not fired
	assert.Equal(t, ticksAfterReplace, f.stats.Snapshot().RotationTickCount)

	active := f.scheduler.Active()
	require.Len(t, active, 1)
	assert.Equal(t, int64(time.Hour/time.Millisecond), active[0].IntervalMs)

	got, _ := f.store.Get(p.ID)
	require.NotNil(t, got.Rotation)
	assert.Equal(t, int64(time.Hour/time.Millisecond), got.Rotation.IntervalMs)
}

func TestStopIsSynchronous(t *testing.T) {
	f := newFixture(t)
	p := f.store.Create("p1", "")

	_, err := f.scheduler.Start(p.ID, 1, "")
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return f.stats.Snapshot().RotationTickCount > 0
	}, time.Second, time.Millisecond)

	f.scheduler.Stop(p.ID)
	after := f.stats.Snapshot().RotationTickCount
	time.Sleep(30 * time.Millisecond)

	assert.Equal(t, after, f.stats.Snapshot().RotationTickCount)
	_, ok := f.scheduler.Status(p.ID)
	assert.False(t, ok)

	got, _ := f.store.Get(p.ID)
	assert.Nil(t, got.Rotation)

	// Stopping again is a no-op
	f.scheduler.Stop(p.ID)
	f.scheduler.Stop("prof_never_started")
}

func TestNoPresetsIsNonFatal(t *testing.T) {
	f := newFixture(t)
	p := f.store.Create("p1", "")

	_, err := f.scheduler.Start(p.ID, 2, types.CategoryTablet)
	require.NoError(t, err)

	warnings := 0
	deadline := time.After(2 * time.Second)
	for warnings < 3 {
		select {
		case ev := <-f.sub.Events():
			if ev.Type == types.EventRotationWarning {
				assert.Equal(t, p.ID, ev.ProfileID)
				assert.Contains(t, ev.Message, "no presets available")
				warnings++
			}
		case <-deadline:
			t.Fatalf("saw %d warnings", warnings)
		}
	}

	_, ok := f.scheduler.Status(p.ID)
	assert.True(t, ok)
	assert.Equal(t, uint64(0), f.stats.Snapshot().RotationTickCount)
}

func TestRotationEndsWhenProfileRemoved(t *testing.T) {
	f := newFixture(t)
	p := f.store.Create("p1", "")

	_, err := f.scheduler.Start(p.ID, 2, "")
	require.NoError(t, err)

	_, err = f.store.Remove(p.ID)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return f.scheduler.Count() == 0
	}, time.Second, time.Millisecond)
}

func TestIndependentProfiles(t *testing.T) {
	f := newFixture(t)
	a := f.store.Create("a", "")
	b := f.store.Create("b", "")

	_, err := f.scheduler.Start(a.ID, 3, types.CategoryDesktop)
	require.NoError(t, err)
	_, err = f.scheduler.Start(b.ID, 3, types.CategoryMobile)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		sa, _ := f.scheduler.Status(a.ID)
		sb, _ := f.scheduler.Status(b.ID)
		return sa.Ticks > 0 && sb.Ticks > 0
	}, 2*time.Second, 5*time.Millisecond)

	f.scheduler.Stop(a.ID)
	_, ok := f.scheduler.Status(b.ID)
	assert.True(t, ok)

	ga, _ := f.store.Get(a.ID)
	gb, _ := f.store.Get(b.ID)
	assert.Equal(t, uaDesktop, *ga.CurrentUserAgent)
	assert.Equal(t, uaMobile, *gb.CurrentUserAgent)
}

// slowStore reports how many rotate calls overlap
type slowStore struct {
	inFlight atomic.Int32
	maxSeen  atomic.Int32
	calls    atomic.Int32
}

func (s *slowStore) RotateUserAgent(profileID, value string, _ uint64) (*types.Profile, error) {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		m := s.maxSeen.Load()
		if n <= m || s.maxSeen.CompareAndSwap(m, n) {
			break
		}
	}
	s.calls.Add(1)
	time.Sleep(5 * time.Millisecond)
	return &types.Profile{ID: profileID}, nil
}

func (s *slowStore) SetRotation(string, *types.RotationState) error {
	return nil
}

func TestTicksNeverOverlap(t *testing.T) {
	defer goleak.VerifyNone(t)

	registry, err := useragent.NewRegistry(useragent.NewCodec(0), []types.Preset{
		{ID: "d", Value: uaDesktop, Category: types.CategoryDesktop},
	}, nil)
	require.NoError(t, err)

	store := &slowStore{}
	s := NewScheduler(registry, useragent.NewCodec(0), store, nil)

	_, err = s.Start("p1", 1, "")
	require.NoError(t, err)
	// Replacing mid-flight must not let old and new ticks overlap
	time.Sleep(12 * time.Millisecond)
	_, err = s.Start("p1", 1, "")
	require.NoError(t, err)

	require.Eventually(t, func() bool { return store.calls.Load() >= 6 }, 2*time.Second, time.Millisecond)
	s.StopAll()

	assert.Equal(t, int32(1), store.maxSeen.Load())
}

func TestStopAllLeavesNoGoroutines(t *testing.T) {
	defer goleak.VerifyNone(t)

	codec := useragent.NewCodec(0)
	registry, err := useragent.NewRegistry(codec, []types.Preset{
		{ID: "d", Value: uaDesktop, Category: types.CategoryDesktop},
	}, nil)
	require.NoError(t, err)
	store := profile.NewStore(codec, nil, nil, nil)
	s := NewScheduler(registry, codec, store, nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		p := store.Create("p", "")
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Start(p.ID, 1, "")
			assert.NoError(t, err)
			_, err = s.Start(p.ID, 2, "")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	require.Equal(t, 10, s.Count())

	s.StopAll()
	assert.Equal(t, 0, s.Count())
	assert.Empty(t, s.Active())
}
