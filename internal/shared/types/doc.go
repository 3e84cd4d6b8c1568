// Package types provides shared data structures for the Screenlatch service.
//
// This package defines the types exchanged between the lock controller, the
// shell gateway, and the REST surface, keeping the domain packages free of
// transport concerns.
//
// Core Types:
//   - LifecycleState: host app foreground/background transitions
//   - Route: opaque presentable unit identifier
//   - LockState, LockStats: controller state exposed for inspection
//   - SessionInfo, SessionStats: connected shell bookkeeping
//
// Wire Types:
//   - ShellEvent: shell -> service messages (lifecycle, activity, unlock...)
//   - Directive: service -> shell presentation instructions
//     (present, replace, dismiss)
package types
