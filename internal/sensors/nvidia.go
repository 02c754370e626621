//go:build !disable_nvml

package sensors

import (
	"fmt"

	"github.com/NVIDIA/go-nvml/pkg/nvml"
	"github.com/cfan/cfan/internal/configuration"
	"github.com/cfan/cfan/internal/nvidia_base"
)

type temperatureDevice interface {
	GetTemperature(nvml.TemperatureSensors) (uint32, nvml.Return)
}

// NvidiaSensor reports the hottest GPU of all devices matching its configuration
type NvidiaSensor struct {
	Config configuration.SensorConfig `json:"configuration"`

	devices []temperatureDevice
}

func CreateNvidiaSensor(config configuration.SensorConfig) (Sensor, error) {
	devices, err := nvidia_base.GetDevices(config.Nvidia.Device)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNvml, err)
	}
	if len(devices) <= 0 {
		return nil, fmt.Errorf("%w: no nvidia device matching '%s' found", ErrNvml, config.Nvidia.Device)
	}

	sensor := &NvidiaSensor{
		Config: config,
	}
	for _, device := range devices {
		sensor.devices = append(sensor.devices, device.DeviceHandle)
	}

	// fail early if the temperature can't be read
	if _, err := sensor.GetValue(); err != nil {
		return nil, err
	}
	return sensor, nil
}

func (sensor *NvidiaSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor *NvidiaSensor) GetConfig() configuration.SensorConfig {
	return sensor.Config
}

func (sensor *NvidiaSensor) GetValue() (int, error) {
	result := 0
	for i, device := range sensor.devices {
		temp, ret := device.GetTemperature(nvml.TEMPERATURE_GPU)
		if ret != nvml.SUCCESS {
			return 0, fmt.Errorf("%w: device %d: %s", ErrNvml, i, nvml.ErrorString(ret))
		}
		result = max(result, int(temp))
	}
	return result, nil
}
