package controller

import (
	"errors"
	"fmt"

	"github.com/cfan/cfan/internal/curves"
)

var ErrStepDownExceedsFloor = errors.New("stepDownMax must not be greater than the minimum fan speed")

// Parameters tune how fast the applied speed may follow the speed table.
type Parameters struct {
	// StepDownMax is the largest decrease of the applied speed per tick.
	// A rise larger than this counts as a spike.
	StepDownMax int
	// StepUpSpike is the increase per tick applied while a spike is being absorbed
	StepUpSpike int
	// SpikeMax is the number of consecutive ticks a rising spike is absorbed before
	// the full target is applied
	SpikeMax int
	// SpikeTempMax is the temperature at and above which spikes are never absorbed
	SpikeTempMax int
}

// State is carried from one tick to the next.
type State struct {
	LastAppliedSpeed      int `json:"lastAppliedSpeed"`
	ConsecutiveSpikeTicks int `json:"consecutiveSpikeTicks"`
}

// Decision describes the outcome of a single tick.
type Decision struct {
	Temperature int `json:"temperature"`
	// Target is the speed table value for Temperature
	Target int `json:"target"`
	// Speed is the value to apply, only meaningful if Apply is true
	Speed        int  `json:"speed"`
	Apply        bool `json:"apply"`
	SpikeLimited bool `json:"spikeLimited"`
}

// SpeedController derives the next fan speed from the current temperature,
// limiting how fast the speed may change between ticks.
type SpeedController struct {
	table  *curves.SpeedTable
	params Parameters
}

func NewSpeedController(table *curves.SpeedTable, params Parameters) (*SpeedController, error) {
	if err := ValidateParameters(table, params); err != nil {
		return nil, err
	}
	return &SpeedController{
		table:  table,
		params: params,
	}, nil
}

// ValidateParameters checks params against each other and the given table.
func ValidateParameters(table *curves.SpeedTable, params Parameters) error {
	if params.StepDownMax < 1 {
		return fmt.Errorf("stepDownMax must be >= 1, was %d", params.StepDownMax)
	}
	if params.StepUpSpike < 1 {
		return fmt.Errorf("stepUpSpike must be >= 1, was %d", params.StepUpSpike)
	}
	if params.SpikeMax < 0 {
		return fmt.Errorf("spikeMax must be >= 0, was %d", params.SpikeMax)
	}
	// a spike limited step is only taken for jumps larger than stepDownMax, so it never overshoots the target
	if params.StepUpSpike > params.StepDownMax {
		return fmt.Errorf("stepUpSpike (%d) must not exceed stepDownMax (%d)", params.StepUpSpike, params.StepDownMax)
	}
	// ramping down from the table floor must never go below zero
	if params.StepDownMax > table.Min() {
		return fmt.Errorf("%w: stepDownMax (%d), minimum fan speed (%d)", ErrStepDownExceedsFloor, params.StepDownMax, table.Min())
	}
	return nil
}

func (c *SpeedController) Table() *curves.SpeedTable {
	return c.table
}

// Step computes the decision for the given temperature and returns the state for the next tick.
func (c *SpeedController) Step(temperature int, state State) (Decision, State) {
	last := state.LastAppliedSpeed
	target := c.table.Lookup(temperature)

	decision := Decision{
		Temperature: temperature,
		Target:      target,
		Speed:       last,
	}

	switch {
	case target == last:
		return decision, state
	case target > last:
		bigJump := target > last+c.params.StepDownMax
		if bigJump && state.ConsecutiveSpikeTicks < c.params.SpikeMax && temperature < c.params.SpikeTempMax {
			// absorb short bursts with small steps
			decision.Speed = last + c.params.StepUpSpike
			decision.SpikeLimited = true
			state.ConsecutiveSpikeTicks++
		} else {
			decision.Speed = target
			state.ConsecutiveSpikeTicks = 0
		}
	default:
		decision.Speed = max(target, last-c.params.StepDownMax)
		state.ConsecutiveSpikeTicks = 0
	}

	decision.Apply = true
	state.LastAppliedSpeed = decision.Speed
	return decision, state
}
