package monitor

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/mirqab/mirqab/internal/logger"
)

// DefaultQueueSize is the per-viewer event queue capacity.
const DefaultQueueSize = 16

// Event names on the push channel.
const (
	EventStatus = "status_update"
	EventLog    = "log_update"
)

// Event is one message fanned out to viewers. Payload is a TrainingState
// for EventStatus or a LogEntry for EventLog; the transport serializes it.
type Event struct {
	Name    string
	Payload interface{}
}

// Viewer is one attached consumer of the event stream. The transport drains
// Events until the channel is closed by Detach.
type Viewer struct {
	id     string
	events chan Event
	drops  atomic.Int64
}

// ID returns the viewer's identity.
func (v *Viewer) ID() string {
	return v.id
}

// Events returns the viewer's delivery channel. It is closed on detach.
func (v *Viewer) Events() <-chan Event {
	return v.events
}

// Drops returns the number of events dropped for this viewer because its
// queue was full.
func (v *Viewer) Drops() int64 {
	return v.drops.Load()
}

// Publisher is the fan-out seam used by the producer API. Tests substitute
// a recording implementation to assert fan-out without a live transport.
type Publisher interface {
	Publish(ev Event)
}

// Broadcaster fans events out to attached viewers. Delivery is best-effort,
// at-most-once: a viewer whose queue is full loses the event, and a slow
// viewer never delays the producer or other viewers.
type Broadcaster struct {
	mu      sync.Mutex
	viewers map[string]*Viewer
	queue   int
	log     logger.Logger
}

// NewBroadcaster creates a broadcaster with the given per-viewer queue
// capacity. A capacity <= 0 selects DefaultQueueSize.
func NewBroadcaster(queueSize int, log logger.Logger) *Broadcaster {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	if log == nil {
		log = logger.Noop()
	}
	return &Broadcaster{
		viewers: make(map[string]*Viewer),
		queue:   queueSize,
		log:     log,
	}
}

// Attach registers a new viewer and queues snap as its first event, so a
// freshly attached viewer always sees the full state before any increment.
func (b *Broadcaster) Attach(snap TrainingState) *Viewer {
	v := &Viewer{
		id:     uuid.NewString(),
		events: make(chan Event, b.queue),
	}

	b.mu.Lock()
	b.viewers[v.id] = v
	// Queue capacity is at least 1 and the channel is fresh, so this send
	// cannot block.
	v.events <- Event{Name: EventStatus, Payload: snap}
	b.mu.Unlock()

	b.log.Debug("viewer %s attached", v.id)
	return v
}

// Detach removes a viewer and closes its channel. Idempotent: detaching an
// already-detached or unknown viewer is a no-op.
func (b *Broadcaster) Detach(v *Viewer) {
	if v == nil {
		return
	}

	b.mu.Lock()
	_, registered := b.viewers[v.id]
	if registered {
		delete(b.viewers, v.id)
		close(v.events)
	}
	b.mu.Unlock()

	if registered {
		b.log.Debug("viewer %s detached", v.id)
	}
}

// DetachAll removes every viewer and closes their channels. Used at
// gateway shutdown.
func (b *Broadcaster) DetachAll() {
	b.mu.Lock()
	for id, v := range b.viewers {
		delete(b.viewers, id)
		close(v.events)
	}
	b.mu.Unlock()
}

// Publish delivers ev to every attached viewer. Non-blocking: a full queue
// drops the event for that viewer only and increments its drop counter.
// Sends happen under the registry lock so a concurrent Detach can never
// close a channel mid-send.
func (b *Broadcaster) Publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, v := range b.viewers {
		select {
		case v.events <- ev:
		default:
			v.drops.Add(1)
			b.log.Debug("viewer %s queue full, dropped %s", v.id, ev.Name)
		}
	}
}

// ViewerCount returns the number of currently attached viewers.
func (b *Broadcaster) ViewerCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.viewers)
}
