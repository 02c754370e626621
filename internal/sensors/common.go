package sensors

import (
	"errors"
	"fmt"

	"github.com/cfan/cfan/internal/configuration"
	"github.com/cfan/cfan/internal/sysfs"
	"github.com/spf13/afero"
)

var ErrNvml = errors.New("nvml")

type Sensor interface {
	GetId() string

	GetConfig() configuration.SensorConfig

	// GetValue returns the current temperature in degrees Celsius
	GetValue() (int, error)
}

// NewSensor creates the sensor described by config.
// File sensor paths are resolved against fs once, here.
func NewSensor(fs afero.Fs, config configuration.SensorConfig) (Sensor, error) {
	if config.File != nil {
		path, err := sysfs.Resolve(fs, config.File.Path)
		if err != nil {
			return nil, fmt.Errorf("sensor %s: %w", config.ID, err)
		}
		return &FileSensor{
			Config: config,
			Path:   path,
			fs:     fs,
		}, nil
	}

	if config.Nvidia != nil {
		sensor, err := CreateNvidiaSensor(config)
		if err != nil {
			return nil, fmt.Errorf("sensor %s: %w", config.ID, err)
		}
		return sensor, nil
	}

	return nil, fmt.Errorf("no matching sensor type for sensor: %s", config.ID)
}
