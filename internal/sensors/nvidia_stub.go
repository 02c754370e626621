//go:build disable_nvml

package sensors

import (
	"fmt"

	"github.com/cfan/cfan/internal/configuration"
)

func CreateNvidiaSensor(config configuration.SensorConfig) (Sensor, error) {
	return nil, fmt.Errorf("%w: this version of cfan was built without NVIDIA (nvml) support", ErrNvml)
}
