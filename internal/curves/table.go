package curves

import (
	"errors"
	"fmt"
	"math"

	"github.com/cfan/cfan/internal/util"
)

var ErrNoSteps = errors.New("speed table has no steps")

// SpeedTable maps every integer degree Celsius in [0, MaxTemp] to a duty cycle.
// It is built once from a sparse set of steps and never modified afterward.
type SpeedTable struct {
	speeds []int
}

// NewSpeedTable expands steps (degree -> duty) into a dense table, interpolating linearly
// between steps and extending the first and last step to the ends of the domain.
func NewSpeedTable(steps map[int]int, maxTemp int, maxPwm int) (*SpeedTable, error) {
	if len(steps) <= 0 {
		return nil, ErrNoSteps
	}
	if maxTemp < 0 {
		return nil, fmt.Errorf("invalid max temperature %d", maxTemp)
	}

	points := make(map[int]float64, len(steps))
	for temp, speed := range steps {
		if temp < 0 || temp > maxTemp {
			return nil, fmt.Errorf("step temperature %d is outside of [0..%d]", temp, maxTemp)
		}
		if speed < 0 || speed > maxPwm {
			return nil, fmt.Errorf("step speed %d at %d°C is outside of [0..%d]", speed, temp, maxPwm)
		}
		points[temp] = float64(speed)
	}

	interpolated := util.InterpolateLinearly(points, 0, maxTemp)
	speeds := make([]int, maxTemp+1)
	for temp := range speeds {
		speeds[temp] = int(math.Round(interpolated[temp]))
	}
	return &SpeedTable{speeds: speeds}, nil
}

// Lookup returns the duty cycle for the given temperature, clamped to the table domain.
func (t *SpeedTable) Lookup(temp int) int {
	return t.speeds[util.Coerce(temp, 0, t.MaxTemp())]
}

func (t *SpeedTable) MaxTemp() int {
	return len(t.speeds) - 1
}

// Min returns the lowest duty cycle the table can produce
func (t *SpeedTable) Min() int {
	result := t.speeds[0]
	for _, speed := range t.speeds {
		result = min(result, speed)
	}
	return result
}

// Max returns the highest duty cycle the table can produce
func (t *SpeedTable) Max() int {
	result := t.speeds[0]
	for _, speed := range t.speeds {
		result = max(result, speed)
	}
	return result
}

// IsMonotonic reports whether the duty cycle never decreases with rising temperature.
func (t *SpeedTable) IsMonotonic() bool {
	for i := 1; i < len(t.speeds); i++ {
		if t.speeds[i] < t.speeds[i-1] {
			return false
		}
	}
	return true
}

// Values returns a copy of the dense table, indexed by degree Celsius
func (t *SpeedTable) Values() []int {
	result := make([]int, len(t.speeds))
	copy(result, t.speeds)
	return result
}
