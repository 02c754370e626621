package curves

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createScenarioTable(t *testing.T) *SpeedTable {
	table, err := NewSpeedTable(map[int]int{40: 80, 60: 120, 85: 255}, 99, 255)
	require.NoError(t, err)
	return table
}

func TestSpeedTable_StepsAreExact(t *testing.T) {
	// GIVEN
	table := createScenarioTable(t)

	// THEN
	assert.Equal(t, 80, table.Lookup(40))
	assert.Equal(t, 120, table.Lookup(60))
	assert.Equal(t, 255, table.Lookup(85))
}

func TestSpeedTable_Interpolation(t *testing.T) {
	// GIVEN
	table := createScenarioTable(t)

	// THEN
	assert.Equal(t, 100, table.Lookup(50))
	assert.Equal(t, 80, table.Lookup(0))
	assert.Equal(t, 255, table.Lookup(90))
	assert.Equal(t, 255, table.Lookup(99))
}

func TestSpeedTable_LookupIsClamped(t *testing.T) {
	// GIVEN
	table := createScenarioTable(t)

	// THEN
	assert.Equal(t, 255, table.Lookup(140))
	assert.Equal(t, 80, table.Lookup(-10))
}

func TestSpeedTable_MinMax(t *testing.T) {
	// GIVEN
	table := createScenarioTable(t)

	// THEN
	assert.Equal(t, 80, table.Min())
	assert.Equal(t, 255, table.Max())
	assert.Equal(t, 99, table.MaxTemp())
	assert.True(t, table.IsMonotonic())
	assert.Len(t, table.Values(), 100)
}

func TestSpeedTable_NotMonotonic(t *testing.T) {
	// GIVEN
	table, err := NewSpeedTable(map[int]int{40: 120, 60: 80}, 99, 255)
	require.NoError(t, err)

	// THEN
	assert.False(t, table.IsMonotonic())
	assert.Equal(t, 80, table.Min())
}

func TestSpeedTable_NoSteps(t *testing.T) {
	// WHEN
	_, err := NewSpeedTable(map[int]int{}, 99, 255)

	// THEN
	assert.ErrorIs(t, err, ErrNoSteps)
}

func TestSpeedTable_StepOutOfDomain(t *testing.T) {
	// WHEN
	_, err := NewSpeedTable(map[int]int{120: 255}, 99, 255)

	// THEN
	assert.EqualError(t, err, "step temperature 120 is outside of [0..99]")
}

func TestSpeedTable_SpeedAboveMaxPwm(t *testing.T) {
	// WHEN
	_, err := NewSpeedTable(map[int]int{60: 120}, 99, 100)

	// THEN
	assert.EqualError(t, err, "step speed 120 at 60°C is outside of [0..100]")
}
