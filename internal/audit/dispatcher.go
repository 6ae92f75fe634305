package audit

import (
	"go.uber.org/zap"

	"github.com/apexauto/garage-api/internal/logger"
)

type Event struct {
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Writer persists one audit entry.
type Writer interface {
	Log(userID *uint, action, entity string, entityID *uint, metadata any) error
}

// Dispatcher writes audit entries off the request path. A full queue drops
// the event; auditing never fails an API call.
type Dispatcher struct {
	writer Writer
	queue  chan Event
	done   chan struct{}
}

func NewDispatcher(w Writer) *Dispatcher {
	d := &Dispatcher{
		writer: w,
		queue:  make(chan Event, 100),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		if err := d.writer.Log(
			ev.UserID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			logger.L().Warn("audit write failed",
				zap.String("action", ev.Action),
				zap.Error(err),
			)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		logger.L().Warn("audit queue full, dropping event",
			zap.String("action", ev.Action),
		)
	}
}

// Close stops accepting events and blocks until every queued entry has been
// written. Dispatch must not be called after Close.
func (d *Dispatcher) Close() {
	close(d.queue)
	<-d.done
}
