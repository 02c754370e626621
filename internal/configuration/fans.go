package configuration

type FanConfig struct {
	ID string `json:"id"`
	// PwmOutput is the sysfs file the fan speed is written to
	PwmOutput string `json:"pwmOutput"`
	// PwmEnable is the sysfs file controlling the fan mode, defaults to PwmOutput + "_enable"
	PwmEnable string `json:"pwmEnable"`
}
