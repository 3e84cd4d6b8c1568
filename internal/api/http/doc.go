// Package http provides the REST control surface for Screenlatch.
//
// The WebSocket gateway is the primary interface for shells; this surface
// exists for operators and for host application layers that hold a session
// ID: inspecting lock state, toggling enablement, forcing a lock, and
// reporting out-of-band unlocks.
package http
