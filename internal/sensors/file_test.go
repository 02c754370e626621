package sensors

import (
	"errors"
	"testing"

	"github.com/cfan/cfan/internal/configuration"
	"github.com/cfan/cfan/internal/sysfs"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMilliDegrees(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected int
		wantErr  bool
	}{
		{name: "with newline", content: "45000\n", expected: 45},
		{name: "without newline", content: "45000", expected: 45},
		{name: "fraction is truncated", content: "45999\n", expected: 45},
		{name: "below one degree", content: "999", expected: 0},
		{name: "six digits", content: "105000\n", expected: 105},
		{name: "empty", content: "", wantErr: true},
		{name: "only newline", content: "\n", wantErr: true},
		{name: "negative", content: "-5000\n", wantErr: true},
		{name: "seven digits", content: "1000000\n", wantErr: true},
		{name: "garbage", content: "4a000\n", wantErr: true},
		{name: "whitespace", content: " 45000\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := ParseMilliDegrees(tt.content)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, value)
		})
	}
}

func TestFileSensor_GetValue(t *testing.T) {
	// GIVEN
	fs := afero.NewMemMapFs()
	path := "/sys/devices/platform/coretemp.0/hwmon/hwmon2/temp1_input"
	require.NoError(t, afero.WriteFile(fs, path, []byte("52000\n"), 0644))

	sensor, err := NewSensor(fs, configuration.SensorConfig{
		ID:   "cpu",
		File: &configuration.FileSensorConfig{Path: path},
	})
	require.NoError(t, err)

	// WHEN
	value, err := sensor.GetValue()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 52, value)
	assert.Equal(t, "cpu", sensor.GetId())
}

func TestFileSensor_ResolvesRenumberedPath(t *testing.T) {
	// GIVEN
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/sys/devices/platform/coretemp.0/hwmon/hwmon4/temp1_input", []byte("61000\n"), 0644))

	// WHEN
	sensor, err := NewSensor(fs, configuration.SensorConfig{
		ID:   "cpu",
		File: &configuration.FileSensorConfig{Path: "/sys/devices/platform/coretemp.0/hwmon/hwmon2/temp1_input"},
	})

	// THEN
	require.NoError(t, err)
	assert.Equal(t, "/sys/devices/platform/coretemp.0/hwmon/hwmon4/temp1_input", sensor.(*FileSensor).Path)
	value, err := sensor.GetValue()
	assert.NoError(t, err)
	assert.Equal(t, 61, value)
}

func TestFileSensor_UnresolvablePath(t *testing.T) {
	// GIVEN
	fs := afero.NewMemMapFs()

	// WHEN
	_, err := NewSensor(fs, configuration.SensorConfig{
		ID:   "cpu",
		File: &configuration.FileSensorConfig{Path: "/sys/devices/platform/coretemp.0/hwmon/hwmon2/temp1_input"},
	})

	// THEN
	assert.True(t, errors.Is(err, sysfs.ErrNoMatch))
}

func TestFileSensor_MissingFileAfterStartup(t *testing.T) {
	// GIVEN
	fs := afero.NewMemMapFs()
	path := "/sys/class/thermal/thermal_zone0/temp"
	require.NoError(t, afero.WriteFile(fs, path, []byte("40000\n"), 0644))
	sensor, err := NewSensor(fs, configuration.SensorConfig{
		ID:   "zone",
		File: &configuration.FileSensorConfig{Path: path},
	})
	require.NoError(t, err)
	require.NoError(t, fs.Remove(path))

	// WHEN
	_, err = sensor.GetValue()

	// THEN
	assert.Error(t, err)
}

func TestNewSensor_NoSubConfig(t *testing.T) {
	// WHEN
	_, err := NewSensor(afero.NewMemMapFs(), configuration.SensorConfig{ID: "x"})

	// THEN
	assert.EqualError(t, err, "no matching sensor type for sensor: x")
}
