package sensors

import (
	"fmt"
	"math"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// Reading is the last value of a sensor
type Reading struct {
	SensorId string `json:"sensorId"`
	Value    int    `json:"value"`
}

// Aggregator samples all sensors and reduces them to the hottest reading.
type Aggregator struct {
	sensors []Sensor

	// Readings contains the last value of each sensor, for observers outside the control loop
	Readings cmap.ConcurrentMap[string, Reading]
	// History contains the most recent aggregated values
	History *History
}

func NewAggregator(sensors []Sensor) *Aggregator {
	return &Aggregator{
		sensors:  sensors,
		Readings: cmap.New[Reading](),
		History:  NewHistory(DefaultHistorySize),
	}
}

func (a *Aggregator) Sensors() []Sensor {
	return a.sensors
}

// Sample reads every sensor once and returns the maximum.
// A single failing sensor fails the whole sample.
func (a *Aggregator) Sample() (int, error) {
	if len(a.sensors) <= 0 {
		return 0, fmt.Errorf("no sensors")
	}

	result := math.MinInt
	for _, sensor := range a.sensors {
		value, err := sensor.GetValue()
		if err != nil {
			return 0, fmt.Errorf("sensor %s: %w", sensor.GetId(), err)
		}
		a.Readings.Set(sensor.GetId(), Reading{SensorId: sensor.GetId(), Value: value})
		result = max(result, value)
	}
	a.History.Add(result)
	return result, nil
}
