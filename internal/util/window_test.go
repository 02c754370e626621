package util

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestGetWindowMax(t *testing.T) {
	// GIVEN
	window := CreateRollingWindow(3)
	window.Append(1)
	window.Append(2)
	window.Append(3)

	// WHEN
	maximum := GetWindowMax(window)

	// THEN
	assert.Equal(t, 3.0, maximum)
}

func TestGetWindowMax_OldValuesAreDropped(t *testing.T) {
	// GIVEN
	window := CreateRollingWindow(2)
	window.Append(90)
	window.Append(40)
	window.Append(50)

	// WHEN
	maximum := GetWindowMax(window)

	// THEN
	assert.Equal(t, 50.0, maximum)
}

func TestGetWindowSum(t *testing.T) {
	// GIVEN
	window := CreateRollingWindow(3)
	window.Append(40)
	window.Append(50)
	window.Append(60)
	window.Append(70)

	// WHEN
	sum := GetWindowSum(window)

	// THEN
	assert.Equal(t, 180.0, sum)
}

func TestGetWindowSum_PartiallyFilled(t *testing.T) {
	// GIVEN
	window := CreateRollingWindow(60)
	window.Append(70)
	window.Append(70)

	// WHEN
	sum := GetWindowSum(window)

	// THEN
	assert.Equal(t, 140.0, sum)
}
