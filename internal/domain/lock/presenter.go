package lock

import (
	"github.com/screenlatch/screenlatch/internal/shared/types"
)

// Presenter is the navigation surface the controller drives. The controller
// never touches a view tree; it only issues these three directives.
type Presenter interface {
	// Present pushes a route on top of the presentation stack.
	Present(route types.Route) error

	// Replace swaps the current top of the presentation stack for the given
	// route, carrying an opaque payload. Not reversible by back-navigation.
	Replace(route types.Route, payload interface{}) error

	// Dismiss pops the top of the presentation stack.
	Dismiss() error
}

// ContentBuilder produces the unlocked application content route. It is
// invoked with the payload delivered by the launch-time unlock, or nil when
// the controller starts disabled and content is shown directly.
type ContentBuilder func(payload interface{}) types.Route
