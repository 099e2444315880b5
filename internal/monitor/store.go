package monitor

import (
	"sync"
	"time"
)

// Store holds the training snapshot and its bounded history buffers.
// One Store exists per process; a single producer mutates it while any
// number of readers take snapshots.
type Store struct {
	mu    sync.RWMutex
	state TrainingState
	logs  *ring[LogEntry]
	loss  *ring[float64]
	lr    *ring[float64]
	times *ring[time.Time]
}

// NewStore creates a store in the idle state with the given history limit
// per series. A limit <= 0 selects DefaultHistoryLimit.
func NewStore(limit int) *Store {
	return &Store{
		state: TrainingState{Status: StatusIdle},
		logs:  newRing[LogEntry](limit),
		loss:  newRing[float64](limit),
		lr:    newRing[float64](limit),
		times: newRing[time.Time](limit),
	}
}

// Snapshot returns a consistent deep copy of the current state, including
// all history buffers. Mutating the result never affects the store.
func (s *Store) Snapshot() TrainingState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// snapshotLocked assembles a deep copy. Callers must hold s.mu.
func (s *Store) snapshotLocked() TrainingState {
	snap := s.state
	snap.Logs = s.logs.all()
	snap.Metrics = MetricsHistory{
		Loss:         s.loss.all(),
		LearningRate: s.lr.all(),
		Timestamps:   s.times.all(),
	}
	if snap.Logs == nil {
		snap.Logs = []LogEntry{}
	}
	if snap.Metrics.Loss == nil {
		snap.Metrics.Loss = []float64{}
	}
	if snap.Metrics.LearningRate == nil {
		snap.Metrics.LearningRate = []float64{}
	}
	if snap.Metrics.Timestamps == nil {
		snap.Metrics.Timestamps = []time.Time{}
	}
	return snap
}

// Reset starts a new session, overwriting any session in progress.
// Counters and histories are cleared and StartTime is recorded; the gauge
// fields (Loss, LearningRate, ElapsedSeconds, RemainingSeconds) and
// LastUpdate persist until the first update of the new session overwrites
// them. Returns the post-reset snapshot.
func (s *Store) Reset(modelName string, totalEpochs, datasetSize, batchSize int) TrainingState {
	now := time.Now()

	totalSteps := 0
	if batchSize > 0 {
		totalSteps = (datasetSize / batchSize) * totalEpochs
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Status = StatusStarting
	s.state.ModelName = modelName
	s.state.TotalEpochs = totalEpochs
	s.state.DatasetSize = datasetSize
	s.state.BatchSize = batchSize
	s.state.CurrentEpoch = 0
	s.state.CurrentStep = 0
	s.state.TotalSteps = totalSteps
	s.state.StartTime = &now

	s.logs.clear()
	s.loss.clear()
	s.lr.clear()
	s.times.clear()

	return s.snapshotLocked()
}

// Apply merges a partial update into the snapshot, records LastUpdate, and
// appends to the metric histories: a supplied Loss pushes (loss, now) onto
// the loss and timestamp series; a supplied LearningRate pushes onto its
// own series. Returns the post-update snapshot.
func (s *Store) Apply(u StatusUpdate) TrainingState {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if u.Status != nil {
		s.state.Status = *u.Status
	}
	if u.CurrentEpoch != nil {
		s.state.CurrentEpoch = *u.CurrentEpoch
	}
	if u.CurrentStep != nil {
		s.state.CurrentStep = *u.CurrentStep
	}
	if u.Loss != nil {
		s.state.Loss = *u.Loss
	}
	if u.LearningRate != nil {
		s.state.LearningRate = *u.LearningRate
	}
	if u.ElapsedSeconds != nil {
		s.state.ElapsedSeconds = *u.ElapsedSeconds
	}
	if u.RemainingSeconds != nil {
		s.state.RemainingSeconds = *u.RemainingSeconds
	}

	s.state.LastUpdate = &now

	if u.Loss != nil {
		s.loss.push(*u.Loss)
		s.times.push(now)
	}
	if u.LearningRate != nil {
		s.lr.push(*u.LearningRate)
	}

	return s.snapshotLocked()
}

// AppendLog adds a log entry to the bounded log buffer and returns it.
// An empty level defaults to "info". Log appends do not touch LastUpdate:
// metric mutation and log mutation are independent paths.
func (s *Store) AppendLog(level, message string) LogEntry {
	if level == "" {
		level = "info"
	}

	entry := LogEntry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs.push(entry)

	return entry
}
