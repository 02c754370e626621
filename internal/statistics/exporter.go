package statistics

import (
	"github.com/cfan/cfan/internal/controller"
	"github.com/cfan/cfan/internal/fans"
	"github.com/cfan/cfan/internal/sensors"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "cfan"
)

// Register adds a collector for every part of the daemon to registerer.
func Register(
	registerer prometheus.Registerer,
	aggregator *sensors.Aggregator,
	fanList []fans.Fan,
	fanController controller.FanController,
) error {
	collectors := []prometheus.Collector{
		NewSensorCollector(aggregator),
		NewFanCollector(fanList),
		NewControllerCollector(fanController),
	}
	for _, collector := range collectors {
		if err := registerer.Register(collector); err != nil {
			return err
		}
	}
	return nil
}
