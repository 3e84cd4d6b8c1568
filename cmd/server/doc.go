// Package main is the entry point for the Screenlatch service.
//
// The service sits between a host UI shell and its application content: the
// shell streams lifecycle transitions and user-activity pings over a
// WebSocket, and receives present/replace/dismiss directives that gate the
// content behind a lock screen.
//
// The server provides:
//   - WebSocket shell gateway (one lock controller per connection)
//   - REST API for session inspection and control
//   - Prometheus metrics
//   - Rate limiting and CORS
//
// Configuration is environment-driven (12-factor); see
// internal/infrastructure/config for the variable list.
//
// Usage:
//
//	LOCK_BACKGROUND_LATENCY=30s LOCK_INACTIVITY_LATENCY=5m ./server
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
