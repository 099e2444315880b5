package monitor

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStoreInitialState(t *testing.T) {
	s := NewStore(0)
	snap := s.Snapshot()

	assert.Equal(t, StatusIdle, snap.Status)
	assert.Equal(t, "", snap.ModelName)
	assert.Zero(t, snap.CurrentEpoch)
	assert.Zero(t, snap.TotalEpochs)
	assert.Zero(t, snap.CurrentStep)
	assert.Zero(t, snap.TotalSteps)
	assert.Zero(t, snap.Loss)
	assert.Zero(t, snap.LearningRate)
	assert.Nil(t, snap.StartTime)
	assert.Nil(t, snap.LastUpdate)
	assert.Empty(t, snap.Logs)
	assert.Empty(t, snap.Metrics.Loss)
	assert.Empty(t, snap.Metrics.LearningRate)
	assert.Empty(t, snap.Metrics.Timestamps)
}

func TestStoreBoundedLogHistory(t *testing.T) {
	s := NewStore(100)

	for i := 0; i < 150; i++ {
		s.AppendLog("info", "message")
	}

	snap := s.Snapshot()
	assert.Len(t, snap.Logs, 100, "log buffer must hold exactly the limit after overflow")
}

func TestStoreLogEvictionOrder(t *testing.T) {
	s := NewStore(100)

	for i := 0; i < 120; i++ {
		s.AppendLog("info", fmt.Sprintf("entry %d", i))
	}

	snap := s.Snapshot()
	require.Len(t, snap.Logs, 100)
	assert.Equal(t, "entry 20", snap.Logs[0].Message, "oldest entries evicted first")
	assert.Equal(t, "entry 119", snap.Logs[99].Message, "newest entry last")
}

func TestStoreBoundedMetricHistory(t *testing.T) {
	s := NewStore(100)

	for i := 0; i < 130; i++ {
		s.Apply(StatusUpdate{
			Loss:         Float(float64(i)),
			LearningRate: Float(float64(i) / 1000),
		})
	}

	snap := s.Snapshot()
	require.Len(t, snap.Metrics.Loss, 100)
	require.Len(t, snap.Metrics.LearningRate, 100, "learning-rate series must be capped like the loss series")
	require.Len(t, snap.Metrics.Timestamps, 100)

	assert.Equal(t, float64(30), snap.Metrics.Loss[0])
	assert.Equal(t, float64(129), snap.Metrics.Loss[99])
}

func TestStoreMetricSeriesIndependence(t *testing.T) {
	s := NewStore(100)

	// Loss-only updates append to loss + timestamps, not learning rate
	s.Apply(StatusUpdate{Loss: Float(1.5)})
	s.Apply(StatusUpdate{Loss: Float(1.4)})

	// A learning-rate-only update appends to its own series
	s.Apply(StatusUpdate{LearningRate: Float(0.001)})

	snap := s.Snapshot()
	assert.Len(t, snap.Metrics.Loss, 2)
	assert.Len(t, snap.Metrics.Timestamps, 2, "timestamps pair with loss arrivals only")
	assert.Len(t, snap.Metrics.LearningRate, 1)
}

func TestStoreReset(t *testing.T) {
	s := NewStore(100)

	// Simulate a previous session
	s.Apply(StatusUpdate{
		Status:       Str(StatusTraining),
		CurrentEpoch: Int(3),
		CurrentStep:  Int(77),
		Loss:         Float(0.42),
		LearningRate: Float(0.0005),
	})
	s.AppendLog("info", "old session line")

	snap := s.Reset("arabic-llama-custom", 3, 500, 16)

	assert.Equal(t, StatusStarting, snap.Status)
	assert.Equal(t, "arabic-llama-custom", snap.ModelName)
	assert.Equal(t, 3, snap.TotalEpochs)
	assert.Equal(t, 500, snap.DatasetSize)
	assert.Equal(t, 16, snap.BatchSize)
	assert.Equal(t, 0, snap.CurrentEpoch)
	assert.Equal(t, 0, snap.CurrentStep)
	assert.Equal(t, 93, snap.TotalSteps, "totalSteps = floor(500/16) * 3")
	require.NotNil(t, snap.StartTime)
	assert.WithinDuration(t, time.Now(), *snap.StartTime, 2*time.Second)

	assert.Empty(t, snap.Logs, "reset clears the log buffer")
	assert.Empty(t, snap.Metrics.Loss, "reset clears the metric history")
	assert.Empty(t, snap.Metrics.LearningRate)
	assert.Empty(t, snap.Metrics.Timestamps)

	// Gauge fields persist until the first update of the new session
	assert.Equal(t, 0.42, snap.Loss)
	assert.Equal(t, 0.0005, snap.LearningRate)
}

func TestStoreResetTotalSteps(t *testing.T) {
	tests := []struct {
		name        string
		datasetSize int
		batchSize   int
		totalEpochs int
		expected    int
	}{
		{"even division", 1000, 32, 5, 155},
		{"floor division", 500, 16, 3, 93},
		{"batch larger than dataset", 10, 32, 5, 0},
		{"batch equals dataset", 32, 32, 2, 2},
		{"zero batch size", 100, 0, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(0)
			snap := s.Reset("m", tt.totalEpochs, tt.datasetSize, tt.batchSize)
			assert.Equal(t, tt.expected, snap.TotalSteps)
		})
	}
}

func TestStoreApplyPartialUpdate(t *testing.T) {
	s := NewStore(100)
	s.Reset("model-a", 5, 1000, 32)

	snap := s.Apply(StatusUpdate{
		Status:       Str(StatusTraining),
		CurrentEpoch: Int(2),
	})

	assert.Equal(t, StatusTraining, snap.Status)
	assert.Equal(t, 2, snap.CurrentEpoch)
	assert.Equal(t, "model-a", snap.ModelName, "untouched fields persist")
	require.NotNil(t, snap.LastUpdate)
	assert.WithinDuration(t, time.Now(), *snap.LastUpdate, 2*time.Second)
}

func TestStoreApplySetsLastUpdateWithoutMetrics(t *testing.T) {
	s := NewStore(100)

	snap := s.Apply(StatusUpdate{Status: Str(StatusTraining)})

	require.NotNil(t, snap.LastUpdate)
	assert.Empty(t, snap.Metrics.Loss, "no metric append without a loss field")
}

func TestStoreAppendLogDoesNotTouchLastUpdate(t *testing.T) {
	s := NewStore(100)

	s.AppendLog("info", "just a log line")
	snap := s.Snapshot()

	assert.Nil(t, snap.LastUpdate, "log appends and metric updates are independent mutation paths")
	require.Len(t, snap.Logs, 1)
	assert.Equal(t, "just a log line", snap.Logs[0].Message)
}

func TestStoreAppendLogDefaultsLevel(t *testing.T) {
	s := NewStore(100)

	entry := s.AppendLog("", "no level given")
	assert.Equal(t, "info", entry.Level)

	entry = s.AppendLog("warning", "with level")
	assert.Equal(t, "warning", entry.Level)
}

func TestSnapshotIsolation(t *testing.T) {
	s := NewStore(100)
	s.Reset("model-a", 2, 100, 10)
	s.Apply(StatusUpdate{Loss: Float(1.0)})
	s.AppendLog("info", "original")

	snap := s.Snapshot()

	// Mutate the returned copy
	snap.Logs[0].Message = "tampered"
	snap.Metrics.Loss[0] = 999
	snap.Status = "tampered"

	fresh := s.Snapshot()
	assert.Equal(t, "original", fresh.Logs[0].Message)
	assert.Equal(t, 1.0, fresh.Metrics.Loss[0])
	assert.Equal(t, StatusStarting, fresh.Status)
}

func TestStoreConcurrentReadersAndWriter(t *testing.T) {
	s := NewStore(100)
	s.Reset("model-a", 5, 1000, 32)

	var wg sync.WaitGroup
	done := make(chan struct{})

	// Single producer
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			s.Apply(StatusUpdate{
				Status:      Str(StatusTraining),
				CurrentStep: Int(i),
				Loss:        Float(2.0 - float64(i)*0.001),
			})
			s.AppendLog("info", "step")
		}
		close(done)
	}()

	// Many readers taking snapshots mid-flight
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				snap := s.Snapshot()
				// A snapshot is internally consistent: series never exceed
				// the cap and loss/timestamps stay paired.
				assert.LessOrEqual(t, len(snap.Metrics.Loss), 100)
				assert.Equal(t, len(snap.Metrics.Loss), len(snap.Metrics.Timestamps))
			}
		}()
	}

	wg.Wait()

	snap := s.Snapshot()
	assert.Equal(t, 499, snap.CurrentStep)
	assert.Len(t, snap.Metrics.Loss, 100)
}
