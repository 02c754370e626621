package configuration

type SensorConfig struct {
	ID     string              `json:"id"`
	File   *FileSensorConfig   `json:"file,omitempty"`
	Nvidia *NvidiaSensorConfig `json:"nvidia,omitempty"`
}

type FileSensorConfig struct {
	// Path to a sysfs file containing a temperature in millidegrees
	Path string `json:"path"`
}

type NvidiaSensorConfig struct {
	// Device identifier prefix like "nvidia-10DE2489-0400", empty selects all devices
	Device string `json:"device"`
}
