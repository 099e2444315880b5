package monitor

import (
	"fmt"
	"math"
	"strings"

	"github.com/mirqab/mirqab/internal/errors"
	"github.com/mirqab/mirqab/internal/logger"
)

// Monitor bundles the state store and broadcaster for one training process.
// It is the producer-facing API: a training or simulation driver reports
// progress through it and never touches the transport.
//
// Construct one Monitor at process start and pass it explicitly to the
// producer and the gateway.
type Monitor struct {
	store *Store
	bcast *Broadcaster
	pub   Publisher
	log   logger.Logger
}

// New creates a monitor with the given history limit per series and
// per-viewer queue capacity. Zero values select the defaults.
func New(historyLimit, queueSize int, log logger.Logger) *Monitor {
	if log == nil {
		log = logger.Noop()
	}
	b := NewBroadcaster(queueSize, log)
	return &Monitor{
		store: NewStore(historyLimit),
		bcast: b,
		pub:   b,
		log:   log,
	}
}

// SetPublisher replaces the fan-out target. Tests use it to record
// published events without a transport.
func (m *Monitor) SetPublisher(p Publisher) {
	m.pub = p
}

// StartSession begins a new training session, overwriting any session in
// progress. Broadcasts the reset snapshot, then the two session header log
// lines.
func (m *Monitor) StartSession(modelName string, totalEpochs, datasetSize, batchSize int) error {
	if strings.TrimSpace(modelName) == "" {
		return errors.New(errors.ErrValidate,
			"Model name is required",
			"Pass a non-empty model name to start a session")
	}
	if totalEpochs < 1 {
		return errors.New(errors.ErrValidate,
			fmt.Sprintf("Total epochs must be at least 1, got %d", totalEpochs),
			"Sessions need one or more epochs")
	}
	if datasetSize < 1 {
		return errors.New(errors.ErrValidate,
			fmt.Sprintf("Dataset size must be at least 1, got %d", datasetSize),
			"Sessions need a non-empty dataset")
	}
	if batchSize < 1 {
		return errors.New(errors.ErrValidate,
			fmt.Sprintf("Batch size must be at least 1, got %d", batchSize),
			"Sessions need a positive batch size")
	}

	snap := m.store.Reset(modelName, totalEpochs, datasetSize, batchSize)
	m.pub.Publish(Event{Name: EventStatus, Payload: snap})
	m.log.Info("training session started: %s (%d epochs)", modelName, totalEpochs)

	m.AddLog("info", fmt.Sprintf("Starting training session for %s", modelName))
	m.AddLog("info", fmt.Sprintf("Total epochs: %d, Dataset size: %d, Batch size: %d",
		totalEpochs, datasetSize, batchSize))
	return nil
}

// UpdateStatus applies a partial update and broadcasts the resulting
// snapshot. The store is left unchanged when validation fails.
func (m *Monitor) UpdateStatus(u StatusUpdate) error {
	if err := validateUpdate(u); err != nil {
		return err
	}

	snap := m.store.Apply(u)
	m.pub.Publish(Event{Name: EventStatus, Payload: snap})
	return nil
}

// AddLog appends a log entry and broadcasts it to viewers. The broadcast
// carries only the new entry, not the whole buffer.
func (m *Monitor) AddLog(level, message string) {
	entry := m.store.AppendLog(level, message)
	m.pub.Publish(Event{Name: EventLog, Payload: entry})
}

// FinishSession marks the session completed and appends the terminal log
// line.
func (m *Monitor) FinishSession() error {
	if err := m.UpdateStatus(StatusUpdate{Status: Str(StatusCompleted)}); err != nil {
		return err
	}
	m.AddLog("info", "Training session completed!")
	m.log.Info("training session finished")
	return nil
}

// Snapshot returns a consistent copy of the current training state.
func (m *Monitor) Snapshot() TrainingState {
	return m.store.Snapshot()
}

// Attach registers a new viewer. Its first queued event is a status_update
// carrying the snapshot at attach time.
func (m *Monitor) Attach() *Viewer {
	return m.bcast.Attach(m.store.Snapshot())
}

// Detach removes a viewer. Idempotent.
func (m *Monitor) Detach(v *Viewer) {
	m.bcast.Detach(v)
}

// DetachAll removes every viewer. Used at gateway shutdown.
func (m *Monitor) DetachAll() {
	m.bcast.DetachAll()
}

// ViewerCount returns the number of attached viewers.
func (m *Monitor) ViewerCount() int {
	return m.bcast.ViewerCount()
}

// validateUpdate rejects malformed partial updates before any mutation.
func validateUpdate(u StatusUpdate) error {
	if u.Status != nil && !ValidStatus(*u.Status) {
		return errors.New(errors.ErrValidate,
			fmt.Sprintf("Unknown status '%s'", *u.Status),
			"Valid statuses: idle, starting, training, completed, failed")
	}
	if u.CurrentEpoch != nil && *u.CurrentEpoch < 0 {
		return errors.New(errors.ErrValidate,
			fmt.Sprintf("Current epoch cannot be negative, got %d", *u.CurrentEpoch),
			"")
	}
	if u.CurrentStep != nil && *u.CurrentStep < 0 {
		return errors.New(errors.ErrValidate,
			fmt.Sprintf("Current step cannot be negative, got %d", *u.CurrentStep),
			"")
	}
	for name, v := range map[string]*float64{
		"loss":                u.Loss,
		"learning_rate":       u.LearningRate,
		"elapsed_time":        u.ElapsedSeconds,
		"estimated_remaining": u.RemainingSeconds,
	} {
		if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0)) {
			return errors.New(errors.ErrValidate,
				fmt.Sprintf("Field %s must be a finite number", name),
				"")
		}
	}
	return nil
}
