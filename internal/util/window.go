package util

import "github.com/asecurityteam/rolling"

func CreateRollingWindow(size int) *rolling.PointPolicy {
	return rolling.NewPointPolicy(rolling.NewWindow(size))
}

// GetWindowMax returns the max value in the window
func GetWindowMax(window *rolling.PointPolicy) float64 {
	return window.Reduce(rolling.Max)
}

// GetWindowSum returns the sum of all values in the window.
// Buckets that never received a value count as 0.
func GetWindowSum(window *rolling.PointPolicy) float64 {
	return window.Reduce(rolling.Sum)
}
