package statistics

import (
	"github.com/cfan/cfan/internal/fans"
	"github.com/cfan/cfan/internal/ui"
	"github.com/prometheus/client_golang/prometheus"
)

const fanSubsystem = "fan"

type FanCollector struct {
	fans []fans.Fan
	pwm  *prometheus.Desc
	mode *prometheus.Desc
}

func NewFanCollector(fans []fans.Fan) *FanCollector {
	return &FanCollector{
		fans: fans,
		pwm: prometheus.NewDesc(prometheus.BuildFQName(namespace, fanSubsystem, "pwm"),
			"Current PWM value of the fan",
			[]string{"id"}, nil,
		),
		mode: prometheus.NewDesc(prometheus.BuildFQName(namespace, fanSubsystem, "pwm_enable"),
			"Current control mode of the fan (0: disabled, 1: pwm, 2: auto)",
			[]string{"id"}, nil,
		),
	}
}

func (collector *FanCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.pwm
	ch <- collector.mode
}

// Collect implements required collect function for all prometheus collectors
func (collector *FanCollector) Collect(ch chan<- prometheus.Metric) {
	for _, fan := range collector.fans {
		fanId := fan.GetId()

		pwm, err := fan.GetPwm()
		if err != nil {
			ui.Debug("Cannot read pwm of fan %s: %v", fanId, err)
		} else {
			ch <- prometheus.MustNewConstMetric(collector.pwm, prometheus.GaugeValue, float64(pwm), fanId)
		}

		mode, err := fan.GetPwmEnabled()
		if err != nil {
			ui.Debug("Cannot read mode of fan %s: %v", fanId, err)
		} else {
			ch <- prometheus.MustNewConstMetric(collector.mode, prometheus.GaugeValue, float64(mode), fanId)
		}
	}
}
