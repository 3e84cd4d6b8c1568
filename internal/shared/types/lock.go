package types

import "time"

// LifecycleState represents host application lifecycle states
type LifecycleState string

const (
	LifecycleForeground LifecycleState = "foreground"
	LifecycleBackground LifecycleState = "background"
)

// Valid reports whether the lifecycle state is one the controller reacts to
func (s LifecycleState) Valid() bool {
	return s == LifecycleForeground || s == LifecycleBackground
}

// Route identifies a presentable unit registered with the host shell.
// The controller never inspects routes; it only hands them to the presenter.
type Route string

// LockState represents controller states exposed for inspection
type LockState string

const (
	LockStateLaunchLocked LockState = "launch_locked"
	LockStateUnlocked     LockState = "unlocked"
	LockStateLocked       LockState = "locked"
	LockStatePendingBG    LockState = "pending_background_lock"
	LockStatePendingIdle  LockState = "pending_inactivity_lock"
)

// LockStats contains a point-in-time view of a lock controller
type LockStats struct {
	Enabled             bool          `json:"enabled"`
	State               LockState     `json:"state"`
	ShowingLockScreen   bool          `json:"showing_lock_screen"`
	UnlockedSinceLaunch bool          `json:"unlocked_since_launch"`
	BackgroundLatency   time.Duration `json:"background_latency_ns"`
	InactivityLatency   time.Duration `json:"inactivity_latency_ns"`
	BackgroundArmed     bool          `json:"background_timer_armed"`
	InactivityArmed     bool          `json:"inactivity_timer_armed"`
}

// SessionInfo describes a connected shell session
type SessionInfo struct {
	ID          string    `json:"id"`
	RemoteAddr  string    `json:"remote_addr,omitempty"`
	ConnectedAt time.Time `json:"connected_at"`
	Lock        LockStats `json:"lock"`
}

// SessionStats contains session registry statistics
type SessionStats struct {
	TotalSessions  int `json:"total_sessions"`
	LockedSessions int `json:"locked_sessions"`
}
