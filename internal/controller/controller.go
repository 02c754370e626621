package controller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cfan/cfan/internal/ui"
)

// TemperatureSampler returns the temperature that drives the fans, in degrees Celsius
type TemperatureSampler interface {
	Sample() (int, error)
}

// SpeedApplier applies a speed to all fans
type SpeedApplier interface {
	Apply(speed int) error
}

type FanController interface {
	Run(ctx context.Context) error
	// UpdateFanSpeed runs a single sample-compute-apply tick
	UpdateFanSpeed() error
	GetStatistics() Statistics
}

// Statistics is a copy of the controller state, safe to read from other goroutines
type Statistics struct {
	State        State     `json:"state"`
	LastDecision Decision  `json:"lastDecision"`
	LastTick     time.Time `json:"lastTick"`
	TickCount    int       `json:"tickCount"`
	WriteCount   int       `json:"writeCount"`
	SpikeTicks   int       `json:"spikeTicks"`
}

type DefaultFanController struct {
	sampler    TemperatureSampler
	applier    SpeedApplier
	speed      *SpeedController
	updateRate time.Duration

	// owned by the control loop
	state State

	mu    sync.Mutex
	stats Statistics
}

func NewFanController(
	sampler TemperatureSampler,
	applier SpeedApplier,
	speed *SpeedController,
	initialState State,
	updateRate time.Duration,
) *DefaultFanController {
	return &DefaultFanController{
		sampler:    sampler,
		applier:    applier,
		speed:      speed,
		updateRate: updateRate,
		state:      initialState,
		stats: Statistics{
			State: initialState,
		},
	}
}

// Run ticks until ctx is cancelled or a tick fails.
func (f *DefaultFanController) Run(ctx context.Context) error {
	ticker := time.NewTicker(f.updateRate)
	defer ticker.Stop()

	for {
		if ctx.Err() != nil {
			return nil
		}

		if err := f.UpdateFanSpeed(); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (f *DefaultFanController) UpdateFanSpeed() error {
	temperature, err := f.sampler.Sample()
	if err != nil {
		return fmt.Errorf("sampling temperatures: %w", err)
	}

	decision, next := f.speed.Step(temperature, f.state)
	if decision.Apply {
		ui.Debug("Temperature %d°C, target %d, applying %d (spike limited: %v)",
			decision.Temperature, decision.Target, decision.Speed, decision.SpikeLimited)
		if err := f.applier.Apply(decision.Speed); err != nil {
			return fmt.Errorf("applying speed %d: %w", decision.Speed, err)
		}
	}
	f.state = next
	f.publish(decision)
	return nil
}

func (f *DefaultFanController) publish(decision Decision) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stats.State = f.state
	f.stats.LastDecision = decision
	f.stats.LastTick = time.Now()
	f.stats.TickCount++
	if decision.Apply {
		f.stats.WriteCount++
	}
	if decision.SpikeLimited {
		f.stats.SpikeTicks++
	}
}

func (f *DefaultFanController) GetStatistics() Statistics {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stats
}
