// Package monitor implements the real-time training-progress core: a
// process-wide state store, bounded history buffers, and an event
// broadcaster that fans state changes out to attached viewers.
//
// # Architecture
//
// One producer (a training or simulation driver) mutates the state through
// the Monitor facade; any number of viewers observe it, either by pulling a
// snapshot or by attaching to the push stream:
//
//	producer -> Monitor -> Store (snapshot + histories)
//	                    -> Broadcaster -> viewer queues -> transport
//
// # Key Components
//
//	Store        - Holds the TrainingState and bounded histories (logs,
//	               loss, learning rate, timestamps), 100 entries each
//	Broadcaster  - Fan-out with per-viewer bounded queues and a
//	               drop-on-full policy
//	Monitor      - Producer API: StartSession, UpdateStatus, AddLog,
//	               FinishSession
//
// # Delivery Semantics
//
// Delivery is best-effort and at-most-once per mutation per viewer. A
// freshly attached viewer always receives a full status_update snapshot
// before any incremental event. A viewer whose queue is full loses events
// rather than delaying the producer; freshness beats completeness for
// monitoring traffic, and the next status_update carries the complete
// state anyway.
//
// # Concurrency
//
// The Store is guarded by a single RWMutex; snapshots are deep copies taken
// under the lock, and fan-out happens after the state lock is released.
// Producer calls never block on viewer delivery.
package monitor
