package statistics

import (
	"github.com/cfan/cfan/internal/sensors"
	"github.com/prometheus/client_golang/prometheus"
)

const subsystemSensor = "sensor"

type SensorCollector struct {
	aggregator *sensors.Aggregator

	value *prometheus.Desc
	avg   *prometheus.Desc
	max   *prometheus.Desc
}

func NewSensorCollector(aggregator *sensors.Aggregator) *SensorCollector {
	return &SensorCollector{
		aggregator: aggregator,
		value: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSensor, "value"),
			"Last temperature of the sensor in degrees Celsius",
			[]string{"id"}, nil,
		),
		max: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSensor, "recent_max"),
			"Highest aggregated temperature of the recent samples",
			nil, nil,
		),
		avg: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSensor, "recent_avg"),
			"Average aggregated temperature of the recent samples",
			nil, nil,
		),
	}
}

func (collector *SensorCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.value
	ch <- collector.max
	ch <- collector.avg
}

// Collect implements required collect function for all prometheus collectors
func (collector *SensorCollector) Collect(ch chan<- prometheus.Metric) {
	for item := range collector.aggregator.Readings.IterBuffered() {
		ch <- prometheus.MustNewConstMetric(collector.value, prometheus.GaugeValue, float64(item.Val.Value), item.Key)
	}
	history := collector.aggregator.History
	if history.Len() > 0 {
		ch <- prometheus.MustNewConstMetric(collector.max, prometheus.GaugeValue, history.Max())
		ch <- prometheus.MustNewConstMetric(collector.avg, prometheus.GaugeValue, history.Avg())
	}
}
