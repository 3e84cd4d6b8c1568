// Package lock implements the lock screen state machine for Screenlatch.
//
// The Controller gates access to application content behind a lock screen.
// It is driven by three external signal sources: app lifecycle transitions,
// a background-duration timer, and an inactivity timer. Transitions emit
// present/replace/dismiss directives through a Presenter supplied at
// construction; the controller never manipulates a view tree directly.
//
// Key Components:
//   - Controller: the state machine (launch locked -> unlocked -> locked)
//   - Presenter: injected navigation surface (present, replace, dismiss)
//   - ContentBuilder: factory for the unlocked content route
//
// Invariants:
//   - A visible lock screen implies no armed inactivity timer
//   - At most one live timer per kind; re-arming always cancels first
//   - No stale timer can fire against a cancelled arm or closed controller
//
// Example Usage:
//
//	ctrl, err := lock.NewController(presenter, lock.Options{
//	    LockScreen:        "lock",
//	    Content:           func(payload interface{}) types.Route { return "home" },
//	    Enabled:           true,
//	    BackgroundLatency: 30 * time.Second,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ctrl.Start()
//	defer ctrl.Close()
package lock
