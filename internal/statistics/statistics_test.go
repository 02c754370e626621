package statistics

import (
	"context"
	"strings"
	"testing"

	"github.com/cfan/cfan/internal/configuration"
	"github.com/cfan/cfan/internal/controller"
	"github.com/cfan/cfan/internal/fans"
	"github.com/cfan/cfan/internal/sensors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

type fakeController struct {
	stats controller.Statistics
}

func (c *fakeController) Run(ctx context.Context) error {
	return nil
}

func (c *fakeController) UpdateFanSpeed() error {
	return nil
}

func (c *fakeController) GetStatistics() controller.Statistics {
	return c.stats
}

type fakeSensor struct {
	id    string
	value int
}

func (s *fakeSensor) GetId() string {
	return s.id
}

func (s *fakeSensor) GetConfig() configuration.SensorConfig {
	return configuration.SensorConfig{ID: s.id}
}

func (s *fakeSensor) GetValue() (int, error) {
	return s.value, nil
}

type fakeFan struct {
	id   string
	pwm  int
	mode fans.ControlMode
}

func (f *fakeFan) GetId() string {
	return f.id
}

func (f *fakeFan) GetConfig() configuration.FanConfig {
	return configuration.FanConfig{ID: f.id}
}

func (f *fakeFan) GetPwm() (int, error) {
	return f.pwm, nil
}

func (f *fakeFan) SetPwm(pwm int) error {
	f.pwm = pwm
	return nil
}

func (f *fakeFan) GetPwmEnabled() (fans.ControlMode, error) {
	return f.mode, nil
}

func (f *fakeFan) SetPwmEnabled(mode fans.ControlMode) error {
	f.mode = mode
	return nil
}

func (f *fakeFan) IsPwmAuto() (bool, error) {
	return f.mode > fans.ControlModePWM, nil
}

func TestControllerCollector(t *testing.T) {
	// GIVEN
	c := &fakeController{
		stats: controller.Statistics{
			State:        controller.State{LastAppliedSpeed: 88, ConsecutiveSpikeTicks: 2},
			LastDecision: controller.Decision{Target: 120, Speed: 88, Apply: true, SpikeLimited: true},
			TickCount:    5,
			WriteCount:   4,
			SpikeTicks:   2,
		},
	}
	collector := NewControllerCollector(c)

	expected := `
# HELP cfan_controller_applied_speed Speed that was last written to the fans
# TYPE cfan_controller_applied_speed gauge
cfan_controller_applied_speed 88
# HELP cfan_controller_consecutive_spike_ticks Number of consecutive ticks a rising temperature spike has been absorbed
# TYPE cfan_controller_consecutive_spike_ticks gauge
cfan_controller_consecutive_spike_ticks 2
# HELP cfan_controller_target_speed Speed table value for the last temperature
# TYPE cfan_controller_target_speed gauge
cfan_controller_target_speed 120
`

	// WHEN
	err := testutil.CollectAndCompare(collector, strings.NewReader(expected),
		"cfan_controller_applied_speed",
		"cfan_controller_consecutive_spike_ticks",
		"cfan_controller_target_speed",
	)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 6, testutil.CollectAndCount(collector))
}

func TestSensorCollector(t *testing.T) {
	// GIVEN
	aggregator := sensors.NewAggregator([]sensors.Sensor{
		&fakeSensor{id: "cpu", value: 62},
		&fakeSensor{id: "gpu", value: 71},
	})
	_, _ = aggregator.Sample()
	collector := NewSensorCollector(aggregator)

	expected := `
# HELP cfan_sensor_value Last temperature of the sensor in degrees Celsius
# TYPE cfan_sensor_value gauge
cfan_sensor_value{id="cpu"} 62
cfan_sensor_value{id="gpu"} 71
`

	// WHEN
	err := testutil.CollectAndCompare(collector, strings.NewReader(expected), "cfan_sensor_value")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 4, testutil.CollectAndCount(collector))
}

func TestSensorCollector_NoSamplesYet(t *testing.T) {
	// GIVEN
	aggregator := sensors.NewAggregator([]sensors.Sensor{&fakeSensor{id: "cpu", value: 62}})
	collector := NewSensorCollector(aggregator)

	// WHEN
	count := testutil.CollectAndCount(collector)

	// THEN
	assert.Equal(t, 0, count)
}

func TestFanCollector(t *testing.T) {
	// GIVEN
	collector := NewFanCollector([]fans.Fan{
		&fakeFan{id: "case", pwm: 120, mode: fans.ControlModePWM},
	})

	expected := `
# HELP cfan_fan_pwm Current PWM value of the fan
# TYPE cfan_fan_pwm gauge
cfan_fan_pwm{id="case"} 120
# HELP cfan_fan_pwm_enable Current control mode of the fan (0: disabled, 1: pwm, 2: auto)
# TYPE cfan_fan_pwm_enable gauge
cfan_fan_pwm_enable{id="case"} 1
`

	// WHEN
	err := testutil.CollectAndCompare(collector, strings.NewReader(expected))

	// THEN
	assert.NoError(t, err)
}

func TestRegister(t *testing.T) {
	// GIVEN
	registry := prometheus.NewRegistry()
	aggregator := sensors.NewAggregator([]sensors.Sensor{&fakeSensor{id: "cpu", value: 62}})

	// WHEN
	err := Register(registry, aggregator, []fans.Fan{&fakeFan{id: "case"}}, &fakeController{})

	// THEN
	assert.NoError(t, err)
	assert.Error(t, Register(registry, aggregator, nil, &fakeController{}))
}
