package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/screenlatch/screenlatch/internal/infrastructure/monitoring"
	"github.com/screenlatch/screenlatch/internal/shared/types"
)

// connPresenter adapts a WebSocket connection to the lock.Presenter
// interface: directives become JSON frames. Writes are serialized because
// timer callbacks and the read loop both emit directives.
type connPresenter struct {
	mu      sync.Mutex
	conn    *websocket.Conn
	metrics *monitoring.Metrics

	// closed when the connection handler returns, releasing any goroutine
	// still waiting on a deferred unlock
	done chan struct{}
}

func newConnPresenter(conn *websocket.Conn, metrics *monitoring.Metrics) *connPresenter {
	return &connPresenter{
		conn:    conn,
		metrics: metrics,
		done:    make(chan struct{}),
	}
}

func (p *connPresenter) Present(route types.Route) error {
	return p.send(types.Directive{Type: types.DirectivePresent, Route: route})
}

func (p *connPresenter) Replace(route types.Route, payload interface{}) error {
	return p.send(types.Directive{Type: types.DirectiveReplace, Route: route, Payload: payload})
}

func (p *connPresenter) Dismiss() error {
	return p.send(types.Directive{Type: types.DirectiveDismiss})
}

func (p *connPresenter) send(d types.Directive) error {
	if d.Timestamp == 0 {
		d.Timestamp = time.Now().Unix()
	}
	if p.metrics != nil {
		p.metrics.RecordWSMessage("out", d.Type)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.conn.WriteJSON(d)
}

func (p *connPresenter) sendError(msg string) error {
	return p.send(types.Directive{Type: types.DirectiveError, Message: msg})
}

func (p *connPresenter) close() {
	close(p.done)
}
