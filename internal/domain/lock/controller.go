package lock

import (
	"errors"
	"sync"
	"time"

	"github.com/screenlatch/screenlatch/internal/infrastructure/monitoring"
	"github.com/screenlatch/screenlatch/internal/shared/types"
)

// Lock triggers, used as metric labels
const (
	TriggerLaunch     = "launch"
	TriggerBackground = "background"
	TriggerInactivity = "inactivity"
	TriggerManual     = "manual"
)

// Unlock kinds, used as metric labels
const (
	UnlockLaunch = "launch"
	UnlockRelock = "relock"
)

// Options configures a Controller. LockScreen and Content are required.
type Options struct {
	// LockScreen is the route presented whenever the app must be gated.
	LockScreen types.Route

	// Content builds the unlocked application content route.
	Content ContentBuilder

	// Enabled controls whether lifecycle and inactivity transitions can
	// trigger locking. Defaults are applied by the caller; the zero value
	// means disabled.
	Enabled bool

	// BackgroundLatency is the grace period after backgrounding before the
	// lock screen is forced. Zero locks as soon as the background
	// transition arrives.
	BackgroundLatency time.Duration

	// InactivityLatency is the grace period of no user input before the
	// lock screen is forced while unlocked. Zero disables inactivity
	// locking.
	InactivityLatency time.Duration

	// ThemeOverride is passed through to the shell untouched.
	ThemeOverride map[string]interface{}
}

// Controller is the lock screen state machine. It receives lifecycle
// transitions and user-activity pings and drives a Presenter with
// present/replace/dismiss directives.
//
// Timers fire on their own goroutines, so all transitions are serialized
// behind a mutex; externally the controller behaves as a single-threaded
// event-driven machine.
type Controller struct {
	mu        sync.Mutex
	opts      Options
	presenter Presenter
	metrics   *monitoring.Metrics

	enabled      bool
	started      bool
	closed       bool
	unlockedOnce bool // first successful unlock after cold start happened
	lockVisible  bool // a lock screen overlay is currently presented

	// At most one live timer per kind. Generation counters invalidate
	// callbacks from timers that were cancelled after firing.
	bgTimer   *time.Timer
	bgGen     uint64
	idleTimer *time.Timer
	idleGen   uint64

	// Deferred results from ShowLockScreen, resolved on the next unlock.
	waiters []chan struct{}
}

// NewController creates a lock controller driving the given presenter.
// A nil presenter is tolerated: directives are dropped silently, which
// covers the app-torn-down-mid-transition case.
func NewController(presenter Presenter, opts Options) (*Controller, error) {
	if opts.LockScreen == "" {
		return nil, errors.New("lock: LockScreen route is required")
	}
	if opts.Content == nil {
		return nil, errors.New("lock: Content builder is required")
	}

	return &Controller{
		opts:      opts,
		presenter: presenter,
		enabled:   opts.Enabled,
	}, nil
}

// WithMetrics adds metrics tracking to the controller
func (c *Controller) WithMetrics(metrics *monitoring.Metrics) *Controller {
	c.metrics = metrics
	return c
}

// Start issues the launch-time directive: the lock screen when enabled,
// the content directly otherwise. Calling Start more than once is a no-op.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.started {
		return
	}
	c.started = true

	if c.enabled {
		// Cold-launch pre-unlock state: the lock screen is the initial
		// route, not a pushed overlay, so lockVisible stays false and
		// IsShowingLockScreen derives from unlockedOnce.
		c.deliver(func(p Presenter) error { return p.Present(c.opts.LockScreen) })
		c.recordLock(TriggerLaunch)
		return
	}

	// Disabled at launch: no launch unlock will ever happen, content shows
	// immediately.
	c.unlockedOnce = true
	route := c.opts.Content(nil)
	c.deliver(func(p Presenter) error { return p.Present(route) })
	c.rearmInactivityLocked()
}

// OnLifecycleChange feeds a foreground/background transition into the
// state machine.
func (c *Controller) OnLifecycleChange(state types.LifecycleState) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	switch state {
	case types.LifecycleBackground:
		if !c.enabled || !c.unlockedOnce || c.isShowingLocked() {
			return
		}
		c.armBackgroundLocked()
	case types.LifecycleForeground:
		// Backgrounding shorter than the latency never locks.
		c.cancelBackgroundLocked()
	}
}

// OnUserActivity resets the inactivity countdown. Pings are debounced:
// each one cancels and re-arms the timer, never accumulates.
func (c *Controller) OnUserActivity() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.rearmInactivityLocked()
}

// DidUnlock signals a successful unlock from the lock screen. The first
// unlock since launch replaces the lock screen with the content route built
// from payload; later unlocks dismiss the lock screen overlay and discard
// payload. Calling DidUnlock when no lock screen is showing is a no-op.
func (c *Controller) DidUnlock(payload interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || !c.isShowingLocked() {
		return
	}

	if !c.unlockedOnce {
		// Launch unlock: replace, not push, so back-navigation cannot
		// reach the lock screen again.
		c.unlockedOnce = true
		c.lockVisible = false
		route := c.opts.Content(payload)
		c.deliver(func(p Presenter) error { return p.Replace(route, payload) })
		c.recordUnlock(UnlockLaunch)
	} else {
		c.lockVisible = false
		c.deliver(func(p Presenter) error { return p.Dismiss() })
		c.recordUnlock(UnlockRelock)
	}

	c.resolveWaitersLocked()
	c.rearmInactivityLocked()
}

// SetEnabled toggles whether future lifecycle and inactivity transitions
// can trigger locking. It never shows or hides the lock screen itself, but
// re-evaluates the inactivity timer immediately.
func (c *Controller) SetEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.enabled = enabled
	if !enabled {
		c.cancelBackgroundLocked()
	}
	c.rearmInactivityLocked()
}

// Enable is shorthand for SetEnabled(true)
func (c *Controller) Enable() { c.SetEnabled(true) }

// Disable is shorthand for SetEnabled(false)
func (c *Controller) Disable() { c.SetEnabled(false) }

// ShowLockScreen locks on demand. The returned channel is closed when the
// next successful unlock pops the presentation; if the controller is closed
// first it never resolves. The call is idempotent: when a lock screen is
// already showing no second presentation is issued, only a waiter is
// registered.
func (c *Controller) ShowLockScreen() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	done := make(chan struct{})
	if c.closed {
		return done
	}

	c.waiters = append(c.waiters, done)
	c.lockLocked(TriggerManual)
	return done
}

// IsShowingLockScreen reports whether the lock screen is the active or
// expected top of the presentation stack, including the cold-launch
// pre-unlock state.
func (c *Controller) IsShowingLockScreen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isShowingLocked()
}

// Enabled reports whether lock-on-background is currently active
func (c *Controller) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// ThemeOverride returns the opaque theme passthrough supplied at construction
func (c *Controller) ThemeOverride() map[string]interface{} {
	return c.opts.ThemeOverride
}

// Stats returns a point-in-time view of the controller
func (c *Controller) Stats() types.LockStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return types.LockStats{
		Enabled:             c.enabled,
		State:               c.stateLocked(),
		ShowingLockScreen:   c.isShowingLocked(),
		UnlockedSinceLaunch: c.unlockedOnce,
		BackgroundLatency:   c.opts.BackgroundLatency,
		InactivityLatency:   c.opts.InactivityLatency,
		BackgroundArmed:     c.bgTimer != nil,
		InactivityArmed:     c.idleTimer != nil,
	}
}

// Close cancels all pending timers and disposes the controller. Pending
// ShowLockScreen results are left unresolved.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.cancelBackgroundLocked()
	c.cancelInactivityLocked()
	return nil
}

// isShowingLocked must be called with mu held
func (c *Controller) isShowingLocked() bool {
	return c.lockVisible || !c.unlockedOnce
}

// stateLocked must be called with mu held
func (c *Controller) stateLocked() types.LockState {
	switch {
	case !c.unlockedOnce:
		return types.LockStateLaunchLocked
	case c.lockVisible:
		return types.LockStateLocked
	case c.bgTimer != nil:
		return types.LockStatePendingBG
	case c.idleTimer != nil:
		return types.LockStatePendingIdle
	default:
		return types.LockStateUnlocked
	}
}

// lockLocked transitions to Locked and presents the lock screen, unless one
// is already showing. Must be called with mu held.
func (c *Controller) lockLocked(trigger string) {
	if c.isShowingLocked() {
		return
	}

	c.lockVisible = true
	// Locked implies no inactivity timer: no need to re-lock what is
	// already locked. The background timer is retired with the episode.
	c.cancelInactivityLocked()
	c.cancelBackgroundLocked()

	c.deliver(func(p Presenter) error { return p.Present(c.opts.LockScreen) })
	c.recordLock(trigger)
}

// armBackgroundLocked must be called with mu held
func (c *Controller) armBackgroundLocked() {
	c.cancelBackgroundLocked()

	if c.opts.BackgroundLatency <= 0 {
		c.lockLocked(TriggerBackground)
		return
	}

	c.bgGen++
	gen := c.bgGen
	c.bgTimer = time.AfterFunc(c.opts.BackgroundLatency, func() {
		c.onBackgroundFire(gen)
	})
	c.recordTimerArmed(TriggerBackground)
}

// cancelBackgroundLocked must be called with mu held
func (c *Controller) cancelBackgroundLocked() {
	if c.bgTimer == nil {
		return
	}
	c.bgTimer.Stop()
	c.bgTimer = nil
	c.bgGen++
	c.recordTimerCancelled(TriggerBackground)
}

func (c *Controller) onBackgroundFire(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || gen != c.bgGen || c.bgTimer == nil {
		return
	}
	c.bgTimer = nil
	if !c.enabled {
		return
	}
	c.lockLocked(TriggerBackground)
}

// rearmInactivityLocked cancels and, when the preconditions hold, re-arms
// the inactivity timer. Must be called with mu held.
func (c *Controller) rearmInactivityLocked() {
	c.cancelInactivityLocked()

	if !c.enabled || c.opts.InactivityLatency <= 0 || c.isShowingLocked() {
		return
	}

	c.idleGen++
	gen := c.idleGen
	c.idleTimer = time.AfterFunc(c.opts.InactivityLatency, func() {
		c.onInactivityFire(gen)
	})
	c.recordTimerArmed(TriggerInactivity)
}

// cancelInactivityLocked must be called with mu held
func (c *Controller) cancelInactivityLocked() {
	if c.idleTimer == nil {
		return
	}
	c.idleTimer.Stop()
	c.idleTimer = nil
	c.idleGen++
	c.recordTimerCancelled(TriggerInactivity)
}

func (c *Controller) onInactivityFire(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || gen != c.idleGen || c.idleTimer == nil {
		return
	}
	c.idleTimer = nil
	if !c.enabled {
		return
	}
	c.lockLocked(TriggerInactivity)
}

// resolveWaitersLocked fulfills every pending ShowLockScreen result exactly
// once. Must be called with mu held.
func (c *Controller) resolveWaitersLocked() {
	for _, w := range c.waiters {
		close(w)
	}
	c.waiters = nil
}

// deliver issues a directive, dropping it silently when no presenter is
// attached. Must be called with mu held.
func (c *Controller) deliver(fn func(Presenter) error) {
	if c.presenter == nil {
		return
	}
	if err := fn(c.presenter); err != nil && c.metrics != nil {
		c.metrics.DirectiveErrors.Inc()
	}
}

func (c *Controller) recordLock(trigger string) {
	if c.metrics != nil {
		c.metrics.RecordLockPresented(trigger)
	}
}

func (c *Controller) recordUnlock(kind string) {
	if c.metrics != nil {
		c.metrics.RecordUnlock(kind)
	}
}

func (c *Controller) recordTimerArmed(kind string) {
	if c.metrics != nil {
		c.metrics.RecordTimerArmed(kind)
	}
}

func (c *Controller) recordTimerCancelled(kind string) {
	if c.metrics != nil {
		c.metrics.RecordTimerCancelled(kind)
	}
}
