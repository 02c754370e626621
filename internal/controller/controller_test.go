package controller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSampler struct {
	temperatures []int
	index        int
	err          error
}

func (s *mockSampler) Sample() (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	temp := s.temperatures[min(s.index, len(s.temperatures)-1)]
	s.index++
	return temp, nil
}

type mockApplier struct {
	applied []int
	err     error
	// onApply is called after every successful write with the number of writes so far
	onApply func(count int)
}

func (a *mockApplier) Apply(speed int) error {
	if a.err != nil {
		return a.err
	}
	a.applied = append(a.applied, speed)
	if a.onApply != nil {
		a.onApply(len(a.applied))
	}
	return nil
}

func TestFanController_UpdateFanSpeed(t *testing.T) {
	// GIVEN
	sampler := &mockSampler{temperatures: []int{60, 60, 60, 60, 60}}
	applier := &mockApplier{}
	c := NewFanController(sampler, applier, createSpeedController(t), State{LastAppliedSpeed: 80}, time.Second)

	// WHEN
	for i := 0; i < 5; i++ {
		require.NoError(t, c.UpdateFanSpeed())
	}

	// THEN
	assert.Equal(t, []int{84, 88, 92, 120}, applier.applied)
	stats := c.GetStatistics()
	assert.Equal(t, 5, stats.TickCount)
	assert.Equal(t, 4, stats.WriteCount)
	assert.Equal(t, 3, stats.SpikeTicks)
	assert.Equal(t, 120, stats.State.LastAppliedSpeed)
	assert.False(t, stats.LastDecision.Apply)
}

func TestFanController_SamplerError(t *testing.T) {
	// GIVEN
	sampler := &mockSampler{err: errors.New("sensor gone")}
	applier := &mockApplier{}
	c := NewFanController(sampler, applier, createSpeedController(t), State{LastAppliedSpeed: 80}, time.Second)

	// WHEN
	err := c.UpdateFanSpeed()

	// THEN
	assert.ErrorContains(t, err, "sensor gone")
	assert.Empty(t, applier.applied)
}

func TestFanController_ApplierErrorKeepsState(t *testing.T) {
	// GIVEN
	sampler := &mockSampler{temperatures: []int{90}}
	applier := &mockApplier{err: errors.New("permission denied")}
	c := NewFanController(sampler, applier, createSpeedController(t), State{LastAppliedSpeed: 80}, time.Second)

	// WHEN
	err := c.UpdateFanSpeed()

	// THEN
	assert.Error(t, err)
	assert.Equal(t, 80, c.GetStatistics().State.LastAppliedSpeed)
}

func TestFanController_RunStopsOnCancel(t *testing.T) {
	// GIVEN
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sampler := &mockSampler{temperatures: []int{50}}
	applier := &mockApplier{
		onApply: func(count int) {
			if count == 4 {
				cancel()
			}
		},
	}
	c := NewFanController(sampler, applier, createSpeedController(t), State{LastAppliedSpeed: 80}, time.Millisecond)

	// WHEN
	done := make(chan error)
	go func() {
		done <- c.Run(ctx)
	}()

	// THEN
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("controller did not stop")
	}
	// 80 -> 100 is a big jump below spikeTempMax, so three ticks are spike limited
	assert.Equal(t, []int{84, 88, 92, 100}, applier.applied)
	assert.Equal(t, 4, c.GetStatistics().TickCount)
}

func TestFanController_RunReturnsTickError(t *testing.T) {
	// GIVEN
	sampler := &mockSampler{err: errors.New("boom")}
	c := NewFanController(sampler, &mockApplier{}, createSpeedController(t), State{LastAppliedSpeed: 80}, time.Millisecond)

	// WHEN
	err := c.Run(context.Background())

	// THEN
	assert.Error(t, err)
}
