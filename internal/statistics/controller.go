package statistics

import (
	"github.com/cfan/cfan/internal/controller"
	"github.com/prometheus/client_golang/prometheus"
)

const controllerSubsystem = "controller"

type ControllerCollector struct {
	controller controller.FanController

	targetSpeed  *prometheus.Desc
	appliedSpeed *prometheus.Desc
	spikeTicks   *prometheus.Desc
	ticks        *prometheus.Desc
	writes       *prometheus.Desc
	spikeLimited *prometheus.Desc
}

func NewControllerCollector(c controller.FanController) *ControllerCollector {
	return &ControllerCollector{
		controller: c,
		targetSpeed: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "target_speed"),
			"Speed table value for the last temperature",
			nil, nil,
		),
		appliedSpeed: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "applied_speed"),
			"Speed that was last written to the fans",
			nil, nil,
		),
		spikeTicks: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "consecutive_spike_ticks"),
			"Number of consecutive ticks a rising temperature spike has been absorbed",
			nil, nil,
		),
		ticks: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "ticks_total"),
			"Number of control loop iterations",
			nil, nil,
		),
		writes: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "writes_total"),
			"Number of control loop iterations that changed the fan speed",
			nil, nil,
		),
		spikeLimited: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "spike_limited_total"),
			"Number of control loop iterations where the speed increase was limited",
			nil, nil,
		),
	}
}

func (collector *ControllerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.targetSpeed
	ch <- collector.appliedSpeed
	ch <- collector.spikeTicks
	ch <- collector.ticks
	ch <- collector.writes
	ch <- collector.spikeLimited
}

// Collect implements required collect function for all prometheus collectors
func (collector *ControllerCollector) Collect(ch chan<- prometheus.Metric) {
	stats := collector.controller.GetStatistics()
	ch <- prometheus.MustNewConstMetric(collector.targetSpeed, prometheus.GaugeValue, float64(stats.LastDecision.Target))
	ch <- prometheus.MustNewConstMetric(collector.appliedSpeed, prometheus.GaugeValue, float64(stats.State.LastAppliedSpeed))
	ch <- prometheus.MustNewConstMetric(collector.spikeTicks, prometheus.GaugeValue, float64(stats.State.ConsecutiveSpikeTicks))
	ch <- prometheus.MustNewConstMetric(collector.ticks, prometheus.CounterValue, float64(stats.TickCount))
	ch <- prometheus.MustNewConstMetric(collector.writes, prometheus.CounterValue, float64(stats.WriteCount))
	ch <- prometheus.MustNewConstMetric(collector.spikeLimited, prometheus.CounterValue, float64(stats.SpikeTicks))
}
