package sensors

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cfan/cfan/internal/configuration"
	"github.com/spf13/afero"
)

// maxMilliDegreeDigits bounds the sensor file content, 999999 m°C
const maxMilliDegreeDigits = 6

// FileSensor reads a sysfs temperature attribute containing millidegrees Celsius
type FileSensor struct {
	Config configuration.SensorConfig `json:"configuration"`
	// Path is the resolved location of the configured file
	Path string `json:"path"`

	fs afero.Fs
}

func (sensor *FileSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor *FileSensor) GetConfig() configuration.SensorConfig {
	return sensor.Config
}

func (sensor *FileSensor) GetValue() (int, error) {
	data, err := afero.ReadFile(sensor.fs, sensor.Path)
	if err != nil {
		return 0, err
	}
	value, err := ParseMilliDegrees(string(data))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", sensor.Path, err)
	}
	return value, nil
}

// ParseMilliDegrees converts the content of a sysfs temperature file to whole degrees Celsius.
// The fractional part is truncated.
func ParseMilliDegrees(content string) (int, error) {
	text := strings.TrimSuffix(content, "\n")
	if len(text) <= 0 {
		return 0, fmt.Errorf("empty temperature value")
	}
	if len(text) > maxMilliDegreeDigits {
		return 0, fmt.Errorf("temperature value %q has more than %d digits", text, maxMilliDegreeDigits)
	}
	for _, c := range text {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("invalid temperature value %q", text)
		}
	}
	milliDegrees, err := strconv.Atoi(text)
	if err != nil {
		return 0, err
	}
	return milliDegrees / 1000, nil
}
