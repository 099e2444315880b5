package simulate

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirqab/mirqab/internal/logger"
	"github.com/mirqab/mirqab/internal/monitor"
)

func logMessages(s monitor.TrainingState) []string {
	msgs := make([]string, 0, len(s.Logs))
	for _, l := range s.Logs {
		msgs = append(msgs, l.Message)
	}
	return msgs
}

func TestOptionsSetDefaults(t *testing.T) {
	var o Options
	o.setDefaults()

	assert.Equal(t, DefaultModelName, o.ModelName)
	assert.Equal(t, DefaultEpochs, o.Epochs)
	assert.Equal(t, DefaultDatasetSize, o.DatasetSize)
	assert.Equal(t, DefaultBatchSize, o.BatchSize)
	assert.Equal(t, 1.0, o.Speed)
}

func TestOptionsKeepOverrides(t *testing.T) {
	o := Options{ModelName: "qwen2:0.5b", Epochs: 2, Speed: 4}
	o.setDefaults()

	assert.Equal(t, "qwen2:0.5b", o.ModelName)
	assert.Equal(t, 2, o.Epochs)
	assert.Equal(t, DefaultDatasetSize, o.DatasetSize)
	assert.Equal(t, 4.0, o.Speed)
}

func TestDriverRunsFullSession(t *testing.T) {
	mon := monitor.New(200, 0, logger.Noop())
	d := New(mon, Options{Speed: 1e6}, logger.Noop())

	require.NoError(t, d.Run(context.Background()))

	snap := mon.Snapshot()
	assert.Equal(t, monitor.StatusCompleted, snap.Status)
	assert.Equal(t, DefaultModelName, snap.ModelName)
	assert.Equal(t, DefaultEpochs, snap.TotalEpochs)
	assert.Equal(t, DefaultEpochs, snap.CurrentEpoch)

	// 1000/32 batches per epoch over 5 epochs.
	assert.Equal(t, 155, snap.TotalSteps)
	assert.Equal(t, 155, snap.CurrentStep)
	assert.Equal(t, 310.0, snap.ElapsedSeconds)
	assert.Equal(t, 0.0, snap.RemainingSeconds)

	require.Len(t, snap.Metrics.Loss, 155)
	for _, loss := range snap.Metrics.Loss {
		assert.GreaterOrEqual(t, loss, 0.1)
		assert.LessOrEqual(t, loss, 2.1)
	}

	// The schedule drops 5% at step 100.
	require.Len(t, snap.Metrics.LearningRate, 155)
	assert.InDelta(t, 0.001, snap.Metrics.LearningRate[0], 1e-9)
	assert.InDelta(t, 0.00095, snap.Metrics.LearningRate[154], 1e-9)
}

func TestDriverShortRun(t *testing.T) {
	mon := monitor.New(0, 0, logger.Noop())
	d := New(mon, Options{
		ModelName:   "tinyllama:1.1b",
		Epochs:      2,
		DatasetSize: 6,
		BatchSize:   3,
		Speed:       1e6,
	}, logger.Noop())

	require.NoError(t, d.Run(context.Background()))

	snap := mon.Snapshot()
	assert.Equal(t, monitor.StatusCompleted, snap.Status)
	assert.Equal(t, "tinyllama:1.1b", snap.ModelName)
	assert.Equal(t, 4, snap.TotalSteps)
	assert.Equal(t, 4, snap.CurrentStep)
	assert.Len(t, snap.Metrics.Loss, 4)

	msgs := logMessages(snap)
	assert.Contains(t, msgs, "Starting epoch 1/2")
	assert.Contains(t, msgs, "Starting epoch 2/2")
	assert.Contains(t, msgs, "Completed epoch 2/2")
	assert.Contains(t, msgs, "Training completed successfully!")
	assert.Contains(t, msgs, "Training session completed!")
}

func TestDriverLogsEveryFifthStep(t *testing.T) {
	mon := monitor.New(0, 0, logger.Noop())
	d := New(mon, Options{Epochs: 1, DatasetSize: 12, BatchSize: 2, Speed: 1e6}, logger.Noop())

	require.NoError(t, d.Run(context.Background()))

	var stepLogs []string
	for _, msg := range logMessages(mon.Snapshot()) {
		if strings.HasPrefix(msg, "Epoch 1, Step") {
			stepLogs = append(stepLogs, msg)
		}
	}

	require.Len(t, stepLogs, 2)
	assert.True(t, strings.HasPrefix(stepLogs[0], "Epoch 1, Step 1: Loss = "))
	assert.True(t, strings.HasPrefix(stepLogs[1], "Epoch 1, Step 6: Loss = "))
}

func TestDriverInterrupted(t *testing.T) {
	mon := monitor.New(0, 0, logger.Noop())
	d := New(mon, Options{}, logger.Noop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := d.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)

	snap := mon.Snapshot()
	assert.Equal(t, monitor.StatusTraining, snap.Status)

	msgs := logMessages(snap)
	require.NotEmpty(t, msgs)
	assert.Equal(t, "Training interrupted", msgs[len(msgs)-1])
	assert.NotContains(t, msgs, "Training completed successfully!")
	assert.Equal(t, "warning", snap.Logs[len(snap.Logs)-1].Level)
}

func TestDriverClampsStepsPerEpoch(t *testing.T) {
	mon := monitor.New(0, 0, logger.Noop())
	d := New(mon, Options{Epochs: 1, DatasetSize: 2, BatchSize: 10, Speed: 1e6}, logger.Noop())

	require.NoError(t, d.Run(context.Background()))

	snap := mon.Snapshot()
	assert.Equal(t, monitor.StatusCompleted, snap.Status)
	assert.Equal(t, 1, snap.CurrentStep)
	assert.Len(t, snap.Metrics.Loss, 1)
}
