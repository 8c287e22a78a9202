package sessionkeeper

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type fakeAPI struct {
	refreshCalls  atomic.Int32
	validateCalls atomic.Int32
	refreshOK     atomic.Bool
	refreshErr    error
	userID        *string
	validateErr   error
}

func (a *fakeAPI) Validate(ctx context.Context, token string) (*string, error) {
	a.validateCalls.Add(1)
	return a.userID, a.validateErr
}

func (a *fakeAPI) Refresh(ctx context.Context, token string) (bool, error) {
	a.refreshCalls.Add(1)
	return a.refreshOK.Load(), a.refreshErr
}

type memStore struct {
	mu      sync.Mutex
	state   *State
	cleared bool
}

func (s *memStore) Load() (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, nil
}

func (s *memStore) Save(state *State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	return nil
}

func (s *memStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = nil
	s.cleared = true
	return nil
}

type keeperFixture struct {
	clock  *fakeClock
	api    *fakeAPI
	store  *memStore
	keeper *Keeper

	expired  atomic.Int32
	restored chan string
}

func newKeeperFixture(opts Options) *keeperFixture {
	f := &keeperFixture{
		clock:    &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
		api:      &fakeAPI{},
		store:    &memStore{state: &State{SessionToken: "tok"}},
		restored: make(chan string, 4),
	}
	f.api.refreshOK.Store(true)
	opts.Now = f.clock.Now
	opts.OnExpired = func() { f.expired.Add(1) }
	opts.OnRestored = func(userID string) { f.restored <- userID }
	f.keeper = New(f.store, f.api, opts)
	return f
}

func TestKeeper_RefreshCooldown(t *testing.T) {
	f := newKeeperFixture(Options{Cooldown: 2 * time.Minute})
	ctx := context.Background()

	assert.True(t, f.keeper.Refresh(ctx))
	for i := 0; i < 5; i++ {
		f.keeper.Activity(ctx)
	}
	f.clock.Advance(119 * time.Second)
	assert.True(t, f.keeper.Refresh(ctx))
	assert.Equal(t, int32(1), f.api.refreshCalls.Load())

	f.clock.Advance(time.Second)
	assert.True(t, f.keeper.Refresh(ctx))
	assert.Equal(t, int32(2), f.api.refreshCalls.Load())
}

func TestKeeper_ConcurrentActivityRefreshesOnce(t *testing.T) {
	f := newKeeperFixture(Options{Cooldown: 2 * time.Minute})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.keeper.Activity(context.Background())
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), f.api.refreshCalls.Load())
}

func TestKeeper_FailedRefreshIsRetried(t *testing.T) {
	f := newKeeperFixture(Options{Cooldown: 2 * time.Minute})
	f.api.refreshOK.Store(false)
	ctx := context.Background()

	assert.False(t, f.keeper.Refresh(ctx))
	assert.False(t, f.keeper.Refresh(ctx))
	assert.Equal(t, int32(2), f.api.refreshCalls.Load())
}

func TestKeeper_RefreshWithoutToken(t *testing.T) {
	f := newKeeperFixture(Options{})
	f.store.state = nil

	assert.False(t, f.keeper.Refresh(context.Background()))
	assert.Zero(t, f.api.refreshCalls.Load())
}

func TestKeeper_Validate(t *testing.T) {
	t.Run("invalid session with failed refresh expires", func(t *testing.T) {
		f := newKeeperFixture(Options{})
		f.keeper.setAuthenticated(true)
		f.api.refreshOK.Store(false)

		f.keeper.Validate(context.Background())

		assert.True(t, f.store.cleared)
		assert.Equal(t, int32(1), f.expired.Load())
		assert.False(t, f.keeper.Authenticated())
	})

	t.Run("transport error with failed refresh expires", func(t *testing.T) {
		f := newKeeperFixture(Options{})
		f.api.validateErr = errors.New("offline")
		f.api.refreshErr = errors.New("offline")

		f.keeper.Validate(context.Background())

		assert.Equal(t, int32(1), f.expired.Load())
	})

	t.Run("invalid session rescued by refresh", func(t *testing.T) {
		f := newKeeperFixture(Options{})

		f.keeper.Validate(context.Background())

		assert.False(t, f.store.cleared)
		assert.Zero(t, f.expired.Load())
		assert.Equal(t, int32(1), f.api.refreshCalls.Load())
	})

	t.Run("valid session restores once", func(t *testing.T) {
		f := newKeeperFixture(Options{})
		userID := "u1"
		f.api.userID = &userID

		f.keeper.Validate(context.Background())
		f.keeper.Validate(context.Background())

		assert.Equal(t, "u1", <-f.restored)
		assert.Empty(t, f.restored)
		assert.True(t, f.keeper.Authenticated())
	})

	t.Run("nothing stored", func(t *testing.T) {
		f := newKeeperFixture(Options{})
		f.store.state = nil

		f.keeper.Validate(context.Background())

		assert.Zero(t, f.api.validateCalls.Load())
	})
}

func TestKeeper_Loop(t *testing.T) {
	t.Run("initial refresh and event handling", func(t *testing.T) {
		f := newKeeperFixture(Options{RefreshInterval: time.Hour, CheckInterval: time.Hour})
		userID := "u1"
		f.api.userID = &userID

		f.keeper.Start(context.Background())
		assert.Eventually(t, func() bool { return f.api.refreshCalls.Load() == 1 }, time.Second, 5*time.Millisecond)

		f.keeper.Notify(Online)
		assert.Eventually(t, func() bool { return f.api.validateCalls.Load() == 1 }, time.Second, 5*time.Millisecond)

		f.keeper.Notify(Scroll)
		f.keeper.Notify(KeyDown)
		f.keeper.Stop()
		assert.Equal(t, int32(1), f.api.refreshCalls.Load())
	})

	t.Run("ticks respect the cooldown", func(t *testing.T) {
		f := newKeeperFixture(Options{
			RefreshInterval: 5 * time.Millisecond,
			CheckInterval:   time.Hour,
			Cooldown:        time.Hour,
		})

		f.keeper.Start(context.Background())
		time.Sleep(50 * time.Millisecond)
		f.keeper.Stop()

		assert.Equal(t, int32(1), f.api.refreshCalls.Load())
	})

	t.Run("exits after expiry", func(t *testing.T) {
		f := newKeeperFixture(Options{RefreshInterval: time.Hour, CheckInterval: 5 * time.Millisecond})
		f.api.refreshOK.Store(false)
		f.keeper.opts.OnExpired = func() {
			f.expired.Add(1)
			f.keeper.SetAuthenticated(false)
		}

		f.keeper.Start(context.Background())
		assert.Eventually(t, func() bool { return f.expired.Load() == 1 }, time.Second, 5*time.Millisecond)

		f.keeper.mu.Lock()
		done := f.keeper.done
		f.keeper.mu.Unlock()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("loop did not exit")
		}
		f.keeper.Stop()
	})

	t.Run("stops on context cancel", func(t *testing.T) {
		f := newKeeperFixture(Options{RefreshInterval: time.Hour, CheckInterval: time.Hour})
		ctx, cancel := context.WithCancel(context.Background())

		f.keeper.Start(ctx)
		f.keeper.Start(ctx)
		cancel()

		f.keeper.mu.Lock()
		done := f.keeper.done
		f.keeper.mu.Unlock()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("loop did not exit")
		}
		require.LessOrEqual(t, f.api.refreshCalls.Load(), int32(1))
	})
}
