package types

// ShellEvent represents a message from the host shell to the service.
// Exactly one of the optional fields is meaningful per event type.
type ShellEvent struct {
	Type      string         `json:"type"`
	Lifecycle LifecycleState `json:"state,omitempty"`
	Payload   interface{}    `json:"payload,omitempty"`
	Enabled   *bool          `json:"enabled,omitempty"`
}

// Shell event types (shell -> service)
const (
	EventLifecycle  = "lifecycle"
	EventActivity   = "activity"
	EventUnlock     = "unlock"
	EventSetEnabled = "set_enabled"
	EventShowLock   = "show_lock"
	EventPing       = "ping"
)

// Directive represents a presentation instruction sent to the host shell
type Directive struct {
	Type      string      `json:"type"`
	Route     Route       `json:"route,omitempty"`
	Payload   interface{} `json:"payload,omitempty"`
	Message   string      `json:"message,omitempty"`
	Timestamp int64       `json:"timestamp,omitempty"`
}

// Directive types (service -> shell)
const (
	DirectivePresent  = "present"
	DirectiveReplace  = "replace"
	DirectiveDismiss  = "dismiss"
	DirectiveUnlocked = "unlocked"
	DirectiveSystem   = "system"
	DirectiveError    = "error"
	DirectivePong     = "pong"
)
