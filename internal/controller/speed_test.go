package controller

import (
	"errors"
	"testing"

	"github.com/cfan/cfan/internal/curves"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTable(t *testing.T) *curves.SpeedTable {
	table, err := curves.NewSpeedTable(map[int]int{
		40: 80,
		60: 120,
		85: 255,
	}, 99, 255)
	require.NoError(t, err)
	return table
}

func defaultParameters() Parameters {
	return Parameters{
		StepDownMax:  10,
		StepUpSpike:  4,
		SpikeMax:     3,
		SpikeTempMax: 83,
	}
}

func createSpeedController(t *testing.T) *SpeedController {
	c, err := NewSpeedController(createTable(t), defaultParameters())
	require.NoError(t, err)
	return c
}

func TestSpeedController_AbsorbsSpike(t *testing.T) {
	// GIVEN
	c := createSpeedController(t)
	state := State{LastAppliedSpeed: 80}

	// WHEN
	var applied []int
	for i := 0; i < 4; i++ {
		var decision Decision
		decision, state = c.Step(60, state)
		assert.True(t, decision.Apply)
		assert.Equal(t, 120, decision.Target)
		applied = append(applied, decision.Speed)
	}

	// THEN
	assert.Equal(t, []int{84, 88, 92, 120}, applied)
	assert.Equal(t, 0, state.ConsecutiveSpikeTicks)
	assert.Equal(t, 120, state.LastAppliedSpeed)
}

func TestSpeedController_SpikeCounterIncrements(t *testing.T) {
	// GIVEN
	c := createSpeedController(t)
	state := State{LastAppliedSpeed: 80}

	// WHEN
	decision, state := c.Step(60, state)

	// THEN
	assert.True(t, decision.SpikeLimited)
	assert.Equal(t, 1, state.ConsecutiveSpikeTicks)
}

func TestSpeedController_HotTemperatureSkipsSpikeLimit(t *testing.T) {
	// GIVEN
	c := createSpeedController(t)
	state := State{LastAppliedSpeed: 80}

	// WHEN
	decision, state := c.Step(90, state)

	// THEN
	assert.True(t, decision.Apply)
	assert.False(t, decision.SpikeLimited)
	assert.Equal(t, 255, decision.Speed)
	assert.Equal(t, 0, state.ConsecutiveSpikeTicks)
}

func TestSpeedController_SpikeTempMaxIsExclusive(t *testing.T) {
	// GIVEN
	c := createSpeedController(t)
	state := State{LastAppliedSpeed: 80}

	// WHEN
	decision, _ := c.Step(83, state)

	// THEN
	assert.Equal(t, decision.Target, decision.Speed)
}

func TestSpeedController_SmallRiseIsAppliedDirectly(t *testing.T) {
	// GIVEN
	c := createSpeedController(t)
	state := State{LastAppliedSpeed: 80, ConsecutiveSpikeTicks: 2}

	// WHEN
	// 45°C -> 90, which is not more than stepDownMax above 80
	decision, state := c.Step(45, state)

	// THEN
	assert.True(t, decision.Apply)
	assert.Equal(t, 90, decision.Speed)
	assert.Equal(t, 0, state.ConsecutiveSpikeTicks)
}

func TestSpeedController_RampDownIsLimited(t *testing.T) {
	// GIVEN
	c := createSpeedController(t)
	state := State{LastAppliedSpeed: 120, ConsecutiveSpikeTicks: 1}

	// WHEN
	decision, state := c.Step(40, state)

	// THEN
	assert.True(t, decision.Apply)
	assert.Equal(t, 80, decision.Target)
	assert.Equal(t, 110, decision.Speed)
	assert.Equal(t, 110, state.LastAppliedSpeed)
	assert.Equal(t, 0, state.ConsecutiveSpikeTicks)
}

func TestSpeedController_RampDownReachesTarget(t *testing.T) {
	// GIVEN
	c := createSpeedController(t)
	state := State{LastAppliedSpeed: 120}

	// WHEN
	var applied []int
	for {
		var decision Decision
		decision, state = c.Step(20, state)
		if !decision.Apply {
			break
		}
		applied = append(applied, decision.Speed)
	}

	// THEN
	assert.Equal(t, []int{110, 100, 90, 80}, applied)
}

func TestSpeedController_NoWriteWhenUnchanged(t *testing.T) {
	// GIVEN
	c := createSpeedController(t)
	state := State{LastAppliedSpeed: 100, ConsecutiveSpikeTicks: 2}

	// WHEN
	decision, next := c.Step(50, state)

	// THEN
	assert.False(t, decision.Apply)
	assert.Equal(t, state, next)
}

func TestSpeedController_ZeroSpikeMaxDisablesLimit(t *testing.T) {
	// GIVEN
	params := defaultParameters()
	params.SpikeMax = 0
	c, err := NewSpeedController(createTable(t), params)
	require.NoError(t, err)

	// WHEN
	decision, _ := c.Step(60, State{LastAppliedSpeed: 80})

	// THEN
	assert.Equal(t, 120, decision.Speed)
}

func TestSpeedController_AppliedSpeedStaysInRange(t *testing.T) {
	// GIVEN
	c := createSpeedController(t)
	state := State{LastAppliedSpeed: 80}
	temperatures := []int{-5, 0, 30, 99, 150, 60, 60, 41, 84, 20, 20, 85, 70, 10}

	for _, temp := range temperatures {
		// WHEN
		var decision Decision
		decision, state = c.Step(temp, state)

		// THEN
		assert.GreaterOrEqual(t, state.LastAppliedSpeed, 0)
		assert.LessOrEqual(t, state.LastAppliedSpeed, 255)
		assert.LessOrEqual(t, state.ConsecutiveSpikeTicks, 3)
		if decision.Apply && decision.Speed < decision.Target {
			assert.True(t, decision.SpikeLimited)
		}
	}
}

func TestNewSpeedController_StepDownExceedsFloor(t *testing.T) {
	// GIVEN
	params := defaultParameters()
	params.StepDownMax = 81

	// WHEN
	_, err := NewSpeedController(createTable(t), params)

	// THEN
	assert.True(t, errors.Is(err, ErrStepDownExceedsFloor))
}

func TestNewSpeedController_StepDownEqualToFloor(t *testing.T) {
	// GIVEN
	params := defaultParameters()
	params.StepDownMax = 80

	// WHEN
	_, err := NewSpeedController(createTable(t), params)

	// THEN
	assert.NoError(t, err)
}

func TestSpeedController_SpikeStepIsExact(t *testing.T) {
	// GIVEN
	params := defaultParameters()
	params.StepUpSpike = params.StepDownMax
	c, err := NewSpeedController(createTable(t), params)
	require.NoError(t, err)
	state := State{LastAppliedSpeed: 80}

	// WHEN
	// 52°C -> 104, just above the big jump threshold of 90
	decision, state := c.Step(52, state)

	// THEN
	assert.True(t, decision.SpikeLimited)
	assert.Equal(t, 90, decision.Speed)
	assert.Equal(t, 90, state.LastAppliedSpeed)
}

func TestNewSpeedController_InvalidParameters(t *testing.T) {
	tests := []struct {
		name   string
		modify func(p *Parameters)
	}{
		{"stepDownMax", func(p *Parameters) { p.StepDownMax = 0 }},
		{"stepUpSpike", func(p *Parameters) { p.StepUpSpike = 0 }},
		{"spikeMax", func(p *Parameters) { p.SpikeMax = -1 }},
		{"stepUpSpikeAboveStepDownMax", func(p *Parameters) { p.StepUpSpike = 11 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := defaultParameters()
			tt.modify(&params)
			_, err := NewSpeedController(createTable(t), params)
			assert.Error(t, err)
		})
	}
}
