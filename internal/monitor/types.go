package monitor

import "time"

// Lifecycle statuses for a training session.
const (
	StatusIdle      = "idle"
	StatusStarting  = "starting"
	StatusTraining  = "training"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// ValidStatus reports whether s is a recognized lifecycle status.
func ValidStatus(s string) bool {
	switch s {
	case StatusIdle, StatusStarting, StatusTraining, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// TrainingState is the full training-progress snapshot served to viewers.
// JSON field names are the wire contract consumed by the dashboard and the
// watch TUI.
type TrainingState struct {
	Status           string         `json:"status"`
	CurrentEpoch     int            `json:"current_epoch"`
	TotalEpochs      int            `json:"total_epochs"`
	CurrentStep      int            `json:"current_step"`
	TotalSteps       int            `json:"total_steps"`
	Loss             float64        `json:"loss"`
	LearningRate     float64        `json:"learning_rate"`
	ElapsedSeconds   float64        `json:"elapsed_time"`
	RemainingSeconds float64        `json:"estimated_remaining"`
	ModelName        string         `json:"model_name"`
	DatasetSize      int            `json:"dataset_size"`
	BatchSize        int            `json:"batch_size"`
	StartTime        *time.Time     `json:"start_time,omitempty"`
	LastUpdate       *time.Time     `json:"last_update,omitempty"`
	Logs             []LogEntry     `json:"logs"`
	Metrics          MetricsHistory `json:"metrics_history"`
}

// LogEntry is one line of session log output.
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
}

// MetricsHistory holds the bounded metric series used for charting.
// Timestamps parallel the loss series; the learning-rate series has its
// own cadence.
type MetricsHistory struct {
	Loss         []float64   `json:"loss"`
	LearningRate []float64   `json:"learning_rate"`
	Timestamps   []time.Time `json:"timestamps"`
}

// StatusUpdate is a partial update applied to the snapshot. Nil fields are
// left untouched. This is the typed replacement for the original free-form
// keyword updates: the set of updatable fields is closed.
type StatusUpdate struct {
	Status           *string
	CurrentEpoch     *int
	CurrentStep      *int
	Loss             *float64
	LearningRate     *float64
	ElapsedSeconds   *float64
	RemainingSeconds *float64
}

// Str returns a pointer to s, for building StatusUpdate values.
func Str(s string) *string { return &s }

// Int returns a pointer to v, for building StatusUpdate values.
func Int(v int) *int { return &v }

// Float returns a pointer to v, for building StatusUpdate values.
func Float(v float64) *float64 { return &v }
