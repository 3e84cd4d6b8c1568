// Package monitoring provides Prometheus metrics for the Screenlatch service.
//
// Metrics cover the lock state machine (presentations by trigger, unlocks by
// kind, timer arms and cancels), the shell gateway (socket connections,
// message counts), the session registry, and the HTTP surface.
//
// Example Usage:
//
//	metrics := monitoring.NewMetrics()
//	router.Use(monitoring.Middleware(metrics))
//	ctrl.WithMetrics(metrics)
package monitoring
