// Package simulate drives a scripted training session through the
// producer API. It exists so the dashboard and watch TUI can be tried
// without a real fine-tuning job running.
package simulate

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/mirqab/mirqab/internal/logger"
	"github.com/mirqab/mirqab/internal/monitor"
)

// Defaults for the demo session.
const (
	DefaultModelName   = "arabic-llama-demo"
	DefaultEpochs      = 5
	DefaultDatasetSize = 1000
	DefaultBatchSize   = 32

	// stepDelay is the simulated processing time per step at speed 1.
	stepDelay = 500 * time.Millisecond
)

// Options configures the scripted session.
type Options struct {
	ModelName   string
	Epochs      int
	DatasetSize int
	BatchSize   int

	// Speed divides the per-step delay: 10 runs ten times faster than
	// the scripted half-second cadence.
	Speed float64
}

func (o *Options) setDefaults() {
	if o.ModelName == "" {
		o.ModelName = DefaultModelName
	}
	if o.Epochs <= 0 {
		o.Epochs = DefaultEpochs
	}
	if o.DatasetSize <= 0 {
		o.DatasetSize = DefaultDatasetSize
	}
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
	if o.Speed <= 0 {
		o.Speed = 1
	}
}

// Driver produces a plausible-looking training run: decaying loss with
// noise, a stepped learning-rate schedule, and periodic progress logs.
type Driver struct {
	mon  *monitor.Monitor
	opts Options
	log  logger.Logger
	rng  *rand.Rand
}

// New creates a driver for the given monitor. Zero option fields select
// the demo defaults.
func New(mon *monitor.Monitor, opts Options, log logger.Logger) *Driver {
	opts.setDefaults()
	if log == nil {
		log = logger.Noop()
	}
	return &Driver{
		mon:  mon,
		opts: opts,
		log:  log,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run plays the whole scripted session: start, epochs of step updates,
// completion. Cancelling ctx stops producing mid-run with an
// interruption log; the session is left in its last status so the next
// start overwrites it.
func (d *Driver) Run(ctx context.Context) error {
	o := d.opts
	if err := d.mon.StartSession(o.ModelName, o.Epochs, o.DatasetSize, o.BatchSize); err != nil {
		return err
	}

	stepsPerEpoch := o.DatasetSize / o.BatchSize
	if stepsPerEpoch < 1 {
		stepsPerEpoch = 1
	}
	totalSteps := stepsPerEpoch * o.Epochs

	d.log.Info("Simulating %d epochs of %d steps for %s", o.Epochs, stepsPerEpoch, o.ModelName)

	for epoch := 1; epoch <= o.Epochs; epoch++ {
		d.mon.AddLog("info", fmt.Sprintf("Starting epoch %d/%d", epoch, o.Epochs))
		if err := d.mon.UpdateStatus(monitor.StatusUpdate{
			Status:       monitor.Str(monitor.StatusTraining),
			CurrentEpoch: monitor.Int(epoch),
			CurrentStep:  monitor.Int((epoch - 1) * stepsPerEpoch),
		}); err != nil {
			return err
		}

		for step := 0; step < stepsPerEpoch; step++ {
			current := (epoch-1)*stepsPerEpoch + step + 1
			loss := math.Max(0.1, 2.0-float64(current)*0.001+d.noise())
			lr := 0.001 * math.Pow(0.95, float64(current/100))

			if err := d.mon.UpdateStatus(monitor.StatusUpdate{
				Status:           monitor.Str(monitor.StatusTraining),
				CurrentStep:      monitor.Int(current),
				Loss:             monitor.Float(loss),
				LearningRate:     monitor.Float(lr),
				ElapsedSeconds:   monitor.Float(float64(current * 2)),
				RemainingSeconds: monitor.Float(float64((totalSteps - current) * 2)),
			}); err != nil {
				return err
			}

			if step%5 == 0 {
				d.mon.AddLog("info", fmt.Sprintf("Epoch %d, Step %d: Loss = %.4f", epoch, step+1, loss))
			}

			if err := d.pause(ctx); err != nil {
				d.mon.AddLog("warning", "Training interrupted")
				return err
			}
		}

		d.mon.AddLog("info", fmt.Sprintf("Completed epoch %d/%d", epoch, o.Epochs))
	}

	d.mon.AddLog("info", "Training completed successfully!")
	return d.mon.FinishSession()
}

// noise returns a uniform sample in [-0.1, 0.1).
func (d *Driver) noise() float64 {
	return d.rng.Float64()*0.2 - 0.1
}

func (d *Driver) pause(ctx context.Context) error {
	delay := time.Duration(float64(stepDelay) / d.opts.Speed)
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
