// Package sessionkeeper keeps a client's server session alive. It refreshes
// on a timer and on user activity, validates periodically, and clears the
// stored session once the server no longer accepts it.
package sessionkeeper

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/samrambhak/community-server-go/internal/config"
)

// API is the server side of the session.
type API interface {
	Validate(ctx context.Context, token string) (*string, error)
	Refresh(ctx context.Context, token string) (bool, error)
}

// Event is a UI signal fed to the keeper.
type Event int

const (
	PointerDown Event = iota
	KeyDown
	TouchStart
	Scroll
	VisibilityRegained
	Online
)

func (e Event) isActivity() bool {
	return e <= Scroll
}

type Options struct {
	RefreshInterval time.Duration
	Cooldown        time.Duration
	CheckInterval   time.Duration

	OnExpired  func()
	OnRestored func(userID string)

	// Now defaults to time.Now.
	Now func() time.Time
}

func DefaultOptions() Options {
	return Options{
		RefreshInterval: config.SessionRefreshInterval,
		Cooldown:        config.SessionRefreshCooldown,
		CheckInterval:   config.SessionCheckInterval,
	}
}

type Keeper struct {
	store Store
	api   API
	opts  Options

	// refreshMu serializes refresh calls and guards lastRefresh.
	refreshMu   sync.Mutex
	lastRefresh time.Time

	mu            sync.Mutex
	authenticated bool
	stop          chan struct{}
	done          chan struct{}

	events chan Event
}

func New(store Store, api API, opts Options) *Keeper {
	defaults := DefaultOptions()
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = defaults.RefreshInterval
	}
	if opts.Cooldown <= 0 {
		opts.Cooldown = defaults.Cooldown
	}
	if opts.CheckInterval <= 0 {
		opts.CheckInterval = defaults.CheckInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Keeper{
		store:  store,
		api:    api,
		opts:   opts,
		events: make(chan Event, 16),
	}
}

func (k *Keeper) token() string {
	state, err := k.store.Load()
	if err != nil {
		log.Warn().Err(err).Msg("failed to load stored session")
		return ""
	}
	if state == nil {
		return ""
	}
	return state.SessionToken
}

// Refresh extends the stored session. Within the cooldown of the last
// successful refresh it does nothing and reports true.
func (k *Keeper) Refresh(ctx context.Context) bool {
	token := k.token()
	if token == "" {
		return false
	}

	k.refreshMu.Lock()
	defer k.refreshMu.Unlock()

	now := k.opts.Now()
	if !k.lastRefresh.IsZero() && now.Sub(k.lastRefresh) < k.opts.Cooldown {
		return true
	}

	ok, err := k.api.Refresh(ctx, token)
	if err != nil {
		log.Warn().Err(err).Msg("session refresh failed")
		return false
	}
	if !ok {
		return false
	}
	k.lastRefresh = now
	log.Debug().Msg("session refreshed")
	return true
}

// Activity is called on user input and triggers a throttled refresh.
func (k *Keeper) Activity(ctx context.Context) {
	k.Refresh(ctx)
}

// Validate checks the stored session with the server. An invalid session
// gets one refresh attempt; if that fails the store is cleared and
// OnExpired fires. A valid session on an unauthenticated keeper fires
// OnRestored.
func (k *Keeper) Validate(ctx context.Context) {
	token := k.token()
	if token == "" {
		return
	}

	userID, err := k.api.Validate(ctx, token)
	if err != nil {
		log.Warn().Err(err).Msg("session validation failed")
	}
	if err != nil || userID == nil {
		if k.Refresh(ctx) {
			return
		}
		log.Info().Msg("session expired, clearing stored session")
		if err := k.store.Clear(); err != nil {
			log.Error().Err(err).Msg("failed to clear stored session")
		}
		k.setAuthenticated(false)
		if k.opts.OnExpired != nil {
			k.opts.OnExpired()
		}
		return
	}

	if !k.Authenticated() {
		k.setAuthenticated(true)
		if k.opts.OnRestored != nil {
			k.opts.OnRestored(*userID)
		}
	}
}

// Notify queues a UI event for the running loop. Events are dropped when
// the queue is full; the cooldown would discard them anyway.
func (k *Keeper) Notify(event Event) {
	select {
	case k.events <- event:
	default:
	}
}

func (k *Keeper) Authenticated() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.authenticated
}

func (k *Keeper) setAuthenticated(v bool) {
	k.mu.Lock()
	k.authenticated = v
	k.mu.Unlock()
}

// SetAuthenticated records the sign-in state. Signing out signals the loop
// to stop without waiting, so it is safe to call from OnExpired.
func (k *Keeper) SetAuthenticated(v bool) {
	k.setAuthenticated(v)
	if !v {
		k.signalStop()
	}
}

// Start marks the keeper authenticated and runs the refresh loop until
// Stop, ctx cancellation, or expiry. Calling Start on a running keeper is a
// no-op.
func (k *Keeper) Start(ctx context.Context) {
	k.mu.Lock()
	if k.done != nil {
		select {
		case <-k.done:
		default:
			k.mu.Unlock()
			return
		}
	}
	k.authenticated = true
	k.stop = make(chan struct{})
	k.done = make(chan struct{})
	stop, done := k.stop, k.done
	k.mu.Unlock()

	go k.run(ctx, stop, done)
}

// Stop ends the loop and waits for it to exit.
func (k *Keeper) Stop() {
	if done := k.signalStop(); done != nil {
		<-done
	}
}

func (k *Keeper) signalStop() chan struct{} {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.stop == nil {
		return k.done
	}
	close(k.stop)
	k.stop = nil
	return k.done
}

func (k *Keeper) run(ctx context.Context, stop, done chan struct{}) {
	defer close(done)

	refresh := time.NewTicker(k.opts.RefreshInterval)
	defer refresh.Stop()
	check := time.NewTicker(k.opts.CheckInterval)
	defer check.Stop()

	k.Refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-refresh.C:
			k.Refresh(ctx)
		case <-check.C:
			k.Validate(ctx)
		case event := <-k.events:
			if event.isActivity() {
				k.Activity(ctx)
			} else {
				k.Validate(ctx)
			}
		}

		if !k.Authenticated() {
			log.Debug().Msg("session keeper stopping after sign-out")
			return
		}
	}
}
