// Package ws provides the WebSocket gateway between host shells and their
// lock controllers.
//
// A shell connects once per app instance, streams lifecycle transitions and
// user-activity pings, and receives presentation directives back on the same
// socket. The socket doubles as the controller's Presenter.
//
// Message Types (Shell -> Service):
//   - lifecycle: foreground/background transition
//   - activity: raw input ping (content ignored)
//   - unlock: successful unlock, optional payload
//   - set_enabled: toggle lock-on-background
//   - show_lock: manual on-demand lock
//   - ping: keep-alive
//
// Message Types (Service -> Shell):
//   - present: push a route
//   - replace: swap the stack top for a route, carrying a payload
//   - dismiss: pop the stack top
//   - unlocked: a manual show_lock completed its unlock
//   - system, error, pong
//
// Example Usage:
//
//	handler := ws.NewHandler(registry, cfg.Lock, logger)
//	router.GET("/shell", handler.HandleConnection)
package ws
